package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	"github.com/PoornaPrasan/civicpulse/internal/service"
	"github.com/PoornaPrasan/civicpulse/pkg/httputil"
	"github.com/PoornaPrasan/civicpulse/pkg/pagination"
	"github.com/PoornaPrasan/civicpulse/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateReviewRequest is the JSON request body for submitting a review.
// Field-level presence and range checks are deliberately left to the service
// layer so submissions fail in a fixed order: eligibility first, then title,
// content, and rating.
type CreateReviewRequest struct {
	ComplaintID string   `json:"complaint_id"`
	Rating      int      `json:"rating"`
	Title       string   `json:"title" validate:"max=255"`
	Content     string   `json:"content" validate:"max=5000"`
	Photos      []string `json:"photos"`
}

// VoteRequest is the JSON request body for voting on a review. Helpful is a
// pointer so an explicit false survives the required check.
type VoteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

// --- Handlers ---

// ListReviews handles GET /api/v1/reviews
// @Summary List community reviews
// @Description Returns paginated reviews with optional search, filtering and sorting
// @Tags reviews
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Param search query string false "Substring search over title, content and category"
// @Param category query string false "Category substring filter"
// @Param rating query string false "Rating filter" Enums(all,5,4,3)
// @Param sort query string false "Sort order" Enums(recent,rating,helpful)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := domain.ReviewQuery{
		SearchTerm:     r.URL.Query().Get("search"),
		CategoryFilter: r.URL.Query().Get("category"),
		RatingFilter:   r.URL.Query().Get("rating"),
		SortBy:         r.URL.Query().Get("sort"),
	}
	params := pagination.FromRequest(r)

	reviews, total, err := h.service.ListReviews(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	page := pagination.Slice(reviews, params)
	result := pagination.NewResult(page, len(reviews), params)

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"data":          result.Data,
		"total_count":   result.TotalCount,
		"total_reviews": total,
		"page":          result.Page,
		"per_page":      result.PerPage,
		"total_pages":   result.TotalPages,
	})
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	review, err := h.service.GetReview(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// CommunityStats handles GET /api/v1/reviews/stats
// @Summary Community review statistics
// @Description Returns totals, average rating, helpful count and distinct categories
// @Tags reviews
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/reviews/stats [get]
func (h *ReviewHandler) CommunityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CommunityStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// CreateReview handles POST /api/v1/reviews
// @Summary Submit a review for a resolved complaint
// @Description Creates a review. Requires X-User-ID header. The complaint must
// @Description be resolved, owned by the caller, and not yet reviewed by them.
// @Tags reviews
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Param request body CreateReviewRequest true "Review to submit"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	author, ok := authorFromHeaders(w, r)
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	draft := domain.ReviewDraft{
		ComplaintID: req.ComplaintID,
		Rating:      req.Rating,
		Title:       req.Title,
		Content:     req.Content,
		Photos:      req.Photos,
	}

	review, err := h.service.SubmitReview(r.Context(), draft, author)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// Vote handles POST /api/v1/reviews/{id}/vote
// @Summary Vote on review helpfulness
// @Description Records a helpful or not-helpful vote. One vote per user per review.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param X-User-ID header string true "Authenticated user ID"
// @Param request body VoteRequest true "Vote"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/reviews/{id}/vote [post]
func (h *ReviewHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-User-ID header is required"},
		})
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.service.VoteReview(r.Context(), id, userID, *req.Helpful)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// EligibleComplaints handles GET /api/v1/reviews/eligible-complaints
// @Summary List complaints the caller can review
// @Description Returns the caller's resolved complaints without a review from them
// @Tags reviews
// @Produce json
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/reviews/eligible-complaints [get]
func (h *ReviewHandler) EligibleComplaints(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-User-ID header is required"},
		})
		return
	}

	complaints, err := h.service.EligibleComplaints(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: complaints})
}

// authorFromHeaders builds the review author from the identity headers
// injected by the API gateway. X-User-ID is mandatory, the display fields are
// optional.
func authorFromHeaders(w http.ResponseWriter, r *http.Request) (domain.Author, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-User-ID header is required"},
		})
		return domain.Author{}, false
	}

	return domain.Author{
		UserID:     userID,
		UserName:   r.Header.Get("X-User-Name"),
		UserAvatar: r.Header.Get("X-User-Avatar"),
	}, true
}

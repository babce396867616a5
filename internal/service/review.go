package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	"github.com/PoornaPrasan/civicpulse/internal/event"
	"github.com/PoornaPrasan/civicpulse/internal/repository"
	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

// CircuitOpenFallback is a fallback for the complaint-service circuit breaker.
// When the circuit is open, it returns a structured error with a retry hint
// instead of letting the raw ErrCircuitOpen propagate.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("complaint service is temporarily unavailable, please retry after 30 seconds")
}

// ComplaintLister fetches a user's complaints from the complaint service.
type ComplaintLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo       repository.ReviewRepository
	votes      repository.VoteRegistry
	complaints ComplaintLister
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	repo repository.ReviewRepository,
	votes repository.VoteRegistry,
	complaints ComplaintLister,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		repo:       repo,
		votes:      votes,
		complaints: complaints,
		producer:   producer,
		logger:     logger,
	}
}

// EligibleComplaints returns the user's resolved complaints that do not have a
// review from them yet. Submitting a review removes its complaint from this
// set on the next call.
func (s *ReviewService) EligibleComplaints(ctx context.Context, userID string) ([]domain.Complaint, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user complaints: %w", err)
	}

	reviews, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}

	return domain.EligibleComplaints(complaints, reviews, userID), nil
}

// SubmitReview validates the draft against the author's eligible complaints
// and persists the resulting review. Validation stops at the first failure:
// eligibility, then title, then content, then rating.
func (s *ReviewService) SubmitReview(ctx context.Context, draft domain.ReviewDraft, author domain.Author) (*domain.Review, error) {
	if author.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	eligible, err := s.EligibleComplaints(ctx, author.UserID)
	if err != nil {
		return nil, err
	}

	complaint, err := domain.ValidateDraft(draft, eligible)
	if err != nil {
		return nil, err
	}

	review := domain.NewReview(uuid.New().String(), draft, author, complaint, time.Now())

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("complaint_id", review.ComplaintID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListReviews returns the reviews matching the query, ordered by the selected
// sort key, along with the unfiltered collection size.
func (s *ReviewService) ListReviews(ctx context.Context, query domain.ReviewQuery) ([]domain.Review, int, error) {
	if !domain.IsValidSortBy(query.SortBy) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid sort option %q", query.SortBy))
	}
	if !domain.IsValidRatingFilter(query.RatingFilter) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid rating filter %q", query.RatingFilter))
	}

	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return domain.ApplyQuery(reviews, query), len(reviews), nil
}

// GetReview retrieves a review by its ID.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	return review, nil
}

// CommunityStats returns the derived statistics over the whole review
// collection. The stats are computed on read, so a freshly created review is
// reflected immediately.
func (s *ReviewService) CommunityStats(ctx context.Context) (domain.CommunityStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.CommunityStats{}, fmt.Errorf("community stats: %w", err)
	}
	return stats, nil
}

// VoteReview records a helpfulness vote on a review. Each user votes at most
// once per review; a second vote returns an already-exists error.
func (s *ReviewService) VoteReview(ctx context.Context, reviewID, userID string, helpful bool) (*domain.Review, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	if err := s.votes.Register(ctx, reviewID, userID); err != nil {
		return nil, fmt.Errorf("register vote: %w", err)
	}

	review, err := s.repo.AddVote(ctx, reviewID, helpful)
	if err != nil {
		// Release the claim so the user can retry; otherwise a transient
		// counter failure would burn the vote forever.
		if unregErr := s.votes.Unregister(ctx, reviewID, userID); unregErr != nil {
			s.logger.ErrorContext(ctx, "failed to release vote claim",
				slog.String("review_id", reviewID),
				slog.String("error", unregErr.Error()),
			)
		}
		return nil, fmt.Errorf("add vote: %w", err)
	}

	if err := s.producer.PublishReviewVoted(ctx, review, userID, helpful); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.voted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review vote recorded",
		slog.String("review_id", review.ID),
		slog.Bool("helpful", helpful),
	)

	return review, nil
}

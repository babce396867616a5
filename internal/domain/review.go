package domain

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

// MaxReviewPhotos is the maximum number of photo attachments a review carries.
// Extra attachments are silently discarded, not rejected.
const MaxReviewPhotos = 3

// Validation sentinels for review submission. Each is wrapped in an AppError
// below so handlers get the HTTP mapping while services discriminate with
// errors.Is.
var (
	ErrIneligibleComplaint = errors.New("complaint is not eligible for review")
	ErrMissingTitle        = errors.New("review title is required")
	ErrMissingContent      = errors.New("review content is required")
	ErrInvalidRating       = errors.New("review rating must be between 1 and 5")
)

var (
	// ErrIneligible is returned when the draft references a complaint outside
	// the user's eligible set: not resolved, not theirs, or already reviewed.
	ErrIneligible = apperrors.Unprocessable("INELIGIBLE_COMPLAINT",
		"complaint is not eligible for review", ErrIneligibleComplaint)

	errTitle = &apperrors.AppError{
		Code:    "MISSING_TITLE",
		Message: "review title must not be empty",
		Status:  http.StatusBadRequest,
		Err:     ErrMissingTitle,
	}
	errContent = &apperrors.AppError{
		Code:    "MISSING_CONTENT",
		Message: "review content must not be empty",
		Status:  http.StatusBadRequest,
		Err:     ErrMissingContent,
	}
	errRating = &apperrors.AppError{
		Code:    "INVALID_RATING",
		Message: "review rating must be an integer between 1 and 5",
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidRating,
	}
)

// Review represents a citizen's evaluation of how a resolved complaint was
// handled. Category, Location and ServiceProvider are copied from the
// complaint at creation time so reads never join back to the complaint store.
type Review struct {
	ID              string    `json:"id"`
	ComplaintID     string    `json:"complaint_id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserAvatar      string    `json:"user_avatar,omitempty"`
	Rating          int       `json:"rating"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Photos          []string  `json:"photos,omitempty"`
	Helpful         int       `json:"helpful"`
	NotHelpful      int       `json:"not_helpful"`
	CreatedAt       time.Time `json:"created_at"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	ServiceProvider string    `json:"service_provider"`
}

// ReviewDraft holds the submission fields before validation. It is passed by
// value; validating it has no side effects.
type ReviewDraft struct {
	ComplaintID string   `json:"complaint_id"`
	Rating      int      `json:"rating"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Photos      []string `json:"photos"`
}

// Author identifies the citizen submitting a review.
type Author struct {
	UserID     string
	UserName   string
	UserAvatar string
}

// AttachPhotos appends newly selected photos to the current set and truncates
// the result to MaxReviewPhotos, keeping selection order. Dropping the
// overflow silently is the capacity policy, not an error.
func AttachPhotos(current, incoming []string) []string {
	combined := make([]string, 0, len(current)+len(incoming))
	combined = append(combined, current...)
	combined = append(combined, incoming...)
	if len(combined) > MaxReviewPhotos {
		combined = combined[:MaxReviewPhotos]
	}
	return combined
}

// ValidateDraft checks the draft against the eligible complaint set, in order,
// stopping at the first failure. On success it returns the complaint the draft
// refers to, so the caller can denormalize its fields into the new review.
func ValidateDraft(draft ReviewDraft, eligible []Complaint) (*Complaint, error) {
	var complaint *Complaint
	for i := range eligible {
		if eligible[i].ID == draft.ComplaintID {
			complaint = &eligible[i]
			break
		}
	}
	if draft.ComplaintID == "" || complaint == nil {
		return nil, ErrIneligible
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, errTitle
	}
	if strings.TrimSpace(draft.Content) == "" {
		return nil, errContent
	}
	if draft.Rating < 1 || draft.Rating > 5 {
		return nil, errRating
	}

	return complaint, nil
}

// NewReview builds a review from a validated draft. The photo cap is
// re-applied here so the stored review never exceeds it regardless of how the
// draft was assembled.
func NewReview(id string, draft ReviewDraft, author Author, complaint *Complaint, now time.Time) *Review {
	location := complaint.Location.Address
	if complaint.Location.District != "" {
		location = complaint.Location.Address + ", " + complaint.Location.District
	}

	return &Review{
		ID:              id,
		ComplaintID:     complaint.ID,
		UserID:          author.UserID,
		UserName:        author.UserName,
		UserAvatar:      author.UserAvatar,
		Rating:          draft.Rating,
		Title:           strings.TrimSpace(draft.Title),
		Content:         strings.TrimSpace(draft.Content),
		Photos:          AttachPhotos(nil, draft.Photos),
		Helpful:         0,
		NotHelpful:      0,
		CreatedAt:       now.UTC(),
		Category:        complaint.Category,
		Location:        location,
		ServiceProvider: complaint.Department,
	}
}

// CommunityStats holds the derived statistics over the review collection.
// They are recomputed on every read, never cached.
type CommunityStats struct {
	TotalReviews   int     `json:"total_reviews"`
	AverageRating  float64 `json:"average_rating"`
	HelpfulReviews int     `json:"helpful_reviews"`
	Categories     int     `json:"categories"`
}

// ComputeCommunityStats derives the community statistics from the given
// reviews. An empty collection yields an average rating of 0.
func ComputeCommunityStats(reviews []Review) CommunityStats {
	stats := CommunityStats{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return stats
	}

	seen := make(map[string]struct{})
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Helpful > r.NotHelpful {
			stats.HelpfulReviews++
		}
		seen[r.Category] = struct{}{}
	}

	stats.AverageRating = float64(sum) / float64(len(reviews))
	stats.Categories = len(seen)
	return stats
}

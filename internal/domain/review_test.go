package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Photo attachment
// ============================================================================

func TestAttachPhotos_UnderCap(t *testing.T) {
	photos := AttachPhotos([]string{"a.jpg"}, []string{"b.jpg"})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, photos)
}

func TestAttachPhotos_FourIntoEmpty_KeepsFirstThree(t *testing.T) {
	photos := AttachPhotos(nil, []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"})
	assert.Equal(t, []string{"1.jpg", "2.jpg", "3.jpg"}, photos)
}

func TestAttachPhotos_AlreadyFull_DiscardsIncoming(t *testing.T) {
	current := []string{"a.jpg", "b.jpg", "c.jpg"}
	photos := AttachPhotos(current, []string{"d.jpg"})
	assert.Equal(t, current, photos)
}

func TestAttachPhotos_Empty(t *testing.T) {
	photos := AttachPhotos(nil, nil)
	assert.Empty(t, photos)
}

// ============================================================================
// Draft validation
// ============================================================================

func validDraft() ReviewDraft {
	return ReviewDraft{
		ComplaintID: "c1",
		Rating:      5,
		Title:       "Great",
		Content:     "Fixed fast",
	}
}

func TestValidateDraft_Success(t *testing.T) {
	eligible := []Complaint{resolvedComplaint("c1", "u1")}

	complaint, err := ValidateDraft(validDraft(), eligible)
	require.NoError(t, err)
	require.NotNil(t, complaint)
	assert.Equal(t, "c1", complaint.ID)
}

func TestValidateDraft_EmptyComplaintID(t *testing.T) {
	draft := validDraft()
	draft.ComplaintID = ""

	_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.ErrorIs(t, err, ErrIneligibleComplaint)
}

func TestValidateDraft_ComplaintNotEligible(t *testing.T) {
	draft := validDraft()
	draft.ComplaintID = "c9"

	_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.ErrorIs(t, err, ErrIneligibleComplaint)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INELIGIBLE_COMPLAINT", appErr.Code)
	assert.Equal(t, 422, appErr.Status)
}

func TestValidateDraft_MissingTitle(t *testing.T) {
	draft := validDraft()
	draft.Title = "   "

	_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestValidateDraft_MissingContent(t *testing.T) {
	draft := validDraft()
	draft.Content = "\t\n"

	_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.ErrorIs(t, err, ErrMissingContent)
}

func TestValidateDraft_InvalidRating(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		draft := validDraft()
		draft.Rating = rating

		_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d should be rejected", rating)
	}
}

func TestValidateDraft_ShortCircuitsInOrder(t *testing.T) {
	// Everything is wrong; ineligibility must win.
	draft := ReviewDraft{ComplaintID: "c9", Rating: 0}
	_, err := ValidateDraft(draft, nil)
	assert.ErrorIs(t, err, ErrIneligibleComplaint)

	// Eligible but title and rating both wrong; the title check runs first.
	draft = ReviewDraft{ComplaintID: "c1", Rating: 0, Content: "ok"}
	_, err = ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestValidateDraft_PhotosNeverRejected(t *testing.T) {
	draft := validDraft()
	draft.Photos = []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}

	_, err := ValidateDraft(draft, []Complaint{resolvedComplaint("c1", "u1")})
	assert.NoError(t, err)
}

// ============================================================================
// Review construction
// ============================================================================

func TestNewReview_Denormalization(t *testing.T) {
	complaint := resolvedComplaint("c1", "u1")
	complaint.Location = Location{Address: "12 Main St", District: "Central"}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	draft := validDraft()
	draft.Title = "  Great  "
	draft.Photos = []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"}

	author := Author{UserID: "u1", UserName: "Amara", UserAvatar: "avatar.png"}
	review := NewReview("rev-1", draft, author, &complaint, now)

	assert.Equal(t, "rev-1", review.ID)
	assert.Equal(t, "c1", review.ComplaintID)
	assert.Equal(t, "u1", review.UserID)
	assert.Equal(t, "Amara", review.UserName)
	assert.Equal(t, "Great", review.Title, "title is stored trimmed")
	assert.Equal(t, 0, review.Helpful)
	assert.Equal(t, 0, review.NotHelpful)
	assert.Equal(t, now, review.CreatedAt)
	assert.Equal(t, "Electricity", review.Category)
	assert.Equal(t, "12 Main St, Central", review.Location)
	assert.Equal(t, "City Power", review.ServiceProvider)
	assert.Len(t, review.Photos, MaxReviewPhotos)
}

func TestNewReview_LocationWithoutDistrict(t *testing.T) {
	complaint := resolvedComplaint("c1", "u1")
	review := NewReview("rev-1", validDraft(), Author{UserID: "u1"}, &complaint, time.Now())
	assert.Equal(t, "5 Oak Ave", review.Location)
}

// ============================================================================
// Community stats
// ============================================================================

func TestComputeCommunityStats_Empty(t *testing.T) {
	stats := ComputeCommunityStats(nil)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, 0.0, stats.AverageRating, "empty collection averages to 0, never panics")
	assert.Equal(t, 0, stats.HelpfulReviews)
	assert.Equal(t, 0, stats.Categories)
}

func TestComputeCommunityStats_Counts(t *testing.T) {
	reviews := []Review{
		{Rating: 5, Helpful: 10, NotHelpful: 2, Category: "Roads"},
		{Rating: 4, Helpful: 1, NotHelpful: 1, Category: "Water"},
		{Rating: 3, Helpful: 0, NotHelpful: 5, Category: "Roads"},
	}

	stats := ComputeCommunityStats(reviews)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.InDelta(t, 4.0, stats.AverageRating, 1e-9)
	assert.Equal(t, 1, stats.HelpfulReviews, "only helpful > notHelpful counts")
	assert.Equal(t, 2, stats.Categories)
}

func TestComputeCommunityStats_CategoriesAreCaseSensitive(t *testing.T) {
	reviews := []Review{
		{Rating: 4, Category: "roads"},
		{Rating: 4, Category: "Roads"},
	}
	stats := ComputeCommunityStats(reviews)
	assert.Equal(t, 2, stats.Categories)
}

func TestComputeCommunityStats_TotalMatchesCollectionSize(t *testing.T) {
	for n := 0; n <= 5; n++ {
		reviews := make([]Review, n)
		for i := range reviews {
			reviews[i].Rating = 3
		}
		assert.Equal(t, n, ComputeCommunityStats(reviews).TotalReviews)
	}
}

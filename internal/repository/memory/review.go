package memory

import (
	"context"
	"sync"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

// ReviewRepository is an in-memory review store for local development and
// tests. The slice keeps insertion order, so List mirrors the postgres
// backend's created_at ordering.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

// NewReviewRepository creates an empty in-memory review repository.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: []domain.Review{}}
}

// Create inserts a new review, enforcing one review per (complaint, user) pair.
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ComplaintID == review.ComplaintID && r.reviews[i].UserID == review.UserID {
			return apperrors.AlreadyExists("review", "complaint_id", review.ComplaintID)
		}
	}

	r.reviews = append(r.reviews, *review)
	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.reviews {
		if r.reviews[i].ID == id {
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, apperrors.NotFound("review", id)
}

// List returns all reviews in insertion order.
func (r *ReviewRepository) List(_ context.Context) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Review, len(r.reviews))
	copy(out, r.reviews)
	return out, nil
}

// ListByUser returns the reviews authored by the given user, in insertion order.
func (r *ReviewRepository) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// AddVote increments one vote counter and returns the updated review.
func (r *ReviewRepository) AddVote(_ context.Context, id string, helpful bool) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ID == id {
			if helpful {
				r.reviews[i].Helpful++
			} else {
				r.reviews[i].NotHelpful++
			}
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, apperrors.NotFound("review", id)
}

// Stats derives the community statistics from the current collection.
func (r *ReviewRepository) Stats(_ context.Context) (domain.CommunityStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.ComputeCommunityStats(r.reviews), nil
}

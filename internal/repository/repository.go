package repository

import (
	"context"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
// List returns reviews in insertion order (created_at ascending) so the
// filter/sort pipeline has a stable base order to break ties with.
type ReviewRepository interface {
	// Create inserts a new review. A second review for the same
	// (complaint_id, user_id) pair fails with ErrAlreadyExists.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// List returns the full review collection in insertion order.
	List(ctx context.Context) ([]domain.Review, error)

	// ListByUser returns the reviews authored by the given user, in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)

	// AddVote increments the helpful or not-helpful counter and returns the
	// updated review.
	AddVote(ctx context.Context, id string, helpful bool) (*domain.Review, error)

	// Stats derives the community statistics from the current collection.
	Stats(ctx context.Context) (domain.CommunityStats, error)
}

// VoteRegistry records which users voted on which reviews, allowing each
// (review, user) pair exactly one vote.
type VoteRegistry interface {
	// Register claims the vote for the pair. A second claim fails with
	// ErrAlreadyExists.
	Register(ctx context.Context, reviewID, userID string) error

	// Unregister releases a previously registered claim so the pair may vote
	// again. Used to compensate when the counter update after a successful
	// Register fails.
	Unregister(ctx context.Context, reviewID, userID string) error
}

package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

const voteKeyPrefix = "vote:"

// VoteRegistry implements repository.VoteRegistry using Redis SETNX. Each
// (review, user) pair may claim exactly one vote; the claim never expires.
type VoteRegistry struct {
	client *redis.Client
}

// NewVoteRegistry creates a new Redis-backed vote registry.
func NewVoteRegistry(client *redis.Client) *VoteRegistry {
	return &VoteRegistry{client: client}
}

// Register claims the vote for the (review, user) pair. A second claim for the
// same pair fails with ErrAlreadyExists.
func (r *VoteRegistry) Register(ctx context.Context, reviewID, userID string) error {
	key := voteKeyPrefix + reviewID + ":" + userID

	ok, err := r.client.SetNX(ctx, key, 1, 0).Result()
	if err != nil {
		return fmt.Errorf("redis register vote: %w", err)
	}
	if !ok {
		return apperrors.AlreadyExists("vote", "review_id", reviewID)
	}
	return nil
}

// Unregister releases the claim for the (review, user) pair. Deleting a key
// that does not exist is not an error.
func (r *VoteRegistry) Unregister(ctx context.Context, reviewID, userID string) error {
	key := voteKeyPrefix + reviewID + ":" + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis unregister vote: %w", err)
	}
	return nil
}

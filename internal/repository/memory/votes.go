package memory

import (
	"context"
	"sync"

	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

// VoteRegistry is an in-memory vote deduplication registry for local
// development and tests. It mirrors the redis backend's one-vote-per-user
// semantics.
type VoteRegistry struct {
	mu    sync.Mutex
	votes map[string]struct{}
}

// NewVoteRegistry creates an empty in-memory vote registry.
func NewVoteRegistry() *VoteRegistry {
	return &VoteRegistry{votes: make(map[string]struct{})}
}

// Register records that the user voted on the review. A repeated vote by the
// same user returns an already-exists error.
func (r *VoteRegistry) Register(_ context.Context, reviewID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reviewID + ":" + userID
	if _, ok := r.votes[key]; ok {
		return apperrors.AlreadyExists("vote", "review_id", reviewID)
	}
	r.votes[key] = struct{}{}
	return nil
}

// Unregister releases the claim so the pair may vote again. Releasing a claim
// that was never taken is a no-op.
func (r *VoteRegistry) Unregister(_ context.Context, reviewID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.votes, reviewID+":"+userID)
	return nil
}

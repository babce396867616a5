package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

func TestVoteRegistry_Register(t *testing.T) {
	reg := NewVoteRegistry()

	require.NoError(t, reg.Register(context.Background(), "r1", "u1"))

	err := reg.Register(context.Background(), "r1", "u1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestVoteRegistry_UnregisterAllowsRetry(t *testing.T) {
	reg := NewVoteRegistry()

	require.NoError(t, reg.Register(context.Background(), "r1", "u1"))
	require.NoError(t, reg.Unregister(context.Background(), "r1", "u1"))

	assert.NoError(t, reg.Register(context.Background(), "r1", "u1"))
}

func TestVoteRegistry_UnregisterWithoutClaim(t *testing.T) {
	reg := NewVoteRegistry()

	assert.NoError(t, reg.Unregister(context.Background(), "r1", "u1"))
}

func TestVoteRegistry_DifferentUsersAndReviews(t *testing.T) {
	reg := NewVoteRegistry()

	require.NoError(t, reg.Register(context.Background(), "r1", "u1"))
	assert.NoError(t, reg.Register(context.Background(), "r1", "u2"))
	assert.NoError(t, reg.Register(context.Background(), "r2", "u1"))
}

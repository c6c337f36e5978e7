package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Unrelated tokens stay valid
	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_ExpiredEntryIsForgotten(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", -time.Minute))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	userID := "user-1"

	issuedBefore := time.Now().Add(-time.Minute)

	revoked, err := bl.IsUserRevoked(ctx, userID, issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.RevokeUser(ctx, userID, time.Hour))

	// Tokens issued before the revocation are rejected
	revoked, err = bl.IsUserRevoked(ctx, userID, issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Tokens issued after it are accepted
	revoked, err = bl.IsUserRevoked(ctx, userID, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	// Other users are unaffected
	revoked, err = bl.IsUserRevoked(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)
}

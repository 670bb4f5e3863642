package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/pkg/constants"
)

func tokenStoreRig(t *testing.T) (*miniredis.Miniredis, *tokenRevocationStore) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return s, &tokenRevocationStore{rdb: client}
}

func TestTokenRevocationStore_RoundTrip(t *testing.T) {
	_, store := tokenStoreRig(t)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, jti, 30*time.Minute))

	revoked, err = store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenRevocationStore_ZeroTTLStillRevokes(t *testing.T) {
	s, store := tokenStoreRig(t)
	ctx := context.Background()
	jti := uuid.NewString()

	// An unreadable token expiry arrives as a zero ttl; the entry must still
	// be written, held for the maximum token lifetime.
	require.NoError(t, store.Revoke(ctx, jti, 0))

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, constants.RevokedTokenCacheTTL, s.TTL(revocationKey(jti)))
}

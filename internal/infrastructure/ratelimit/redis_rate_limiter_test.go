package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

func TestRedisRateLimiter_AllowUntilLimit(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	limiter := NewRedisRateLimiter(client, 5, logger.NewNoopLogger())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed, "sixth request in the window is denied")

	allowed, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed, "windows are per identifier")
}

func TestRedisRateLimiter_WindowExpires(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	limiter := NewRedisRateLimiter(client, 1, logger.NewNoopLogger())

	ctx := context.Background()
	allowed, _ := limiter.Allow(ctx, "user-1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "user-1")
	assert.False(t, allowed)

	s.FastForward(constants.RateLimitWindowTTL)

	allowed, _ = limiter.Allow(ctx, "user-1")
	assert.True(t, allowed, "a fresh window resets the counter")
}

func TestRedisRateLimiter_FailsOpen(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	limiter := NewRedisRateLimiter(client, 1, logger.NewNoopLogger())
	s.Close()

	allowed, err := limiter.Allow(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.True(t, allowed, "an unreachable counter never blocks requests")
}

// Package ratelimit provides distributed request rate limiting on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

// RedisRateLimiter enforces a fixed-window per-user request limit. The
// counter lives in Redis so every replica shares one window.
type RedisRateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
	logger    logger.Logger
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window.
func NewRedisRateLimiter(client *redis.Client, limit int, log logger.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:    client,
		limit:     limit,
		window:    constants.RateLimitWindowTTL,
		keyPrefix: "resguardo:ratelimit",
		logger:    log.WithComponent("rate_limiter"),
	}
}

// Allow reports whether the identifier may issue another request in the
// current window. Redis failures fail open: an unreachable counter must not
// take the API down with it.
func (l *RedisRateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("%s:%s", l.keyPrefix, identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn(ctx, "rate limit counter unavailable", logger.Fields{
			"identifier": identifier, "error": err.Error(),
		})
		return true, nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn(ctx, "failed to set rate limit window", logger.Fields{"error": err.Error()})
		}
	}
	return count <= int64(l.limit), nil
}

// Remaining returns how many requests the identifier has left in the window.
func (l *RedisRateLimiter) Remaining(ctx context.Context, identifier string) (int, error) {
	key := fmt.Sprintf("%s:%s", l.keyPrefix, identifier)
	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return l.limit, nil
	}
	if err != nil {
		return 0, err
	}
	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

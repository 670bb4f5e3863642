// Package redis provides the Redis client plus the caches built on it: the
// site-to-organization resolution cache and the revoked token store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/pkg/logger"
)

// NewClient creates a Redis client and verifies connectivity with a ping.
func NewClient(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info(ctx, "redis connection established", logger.Fields{"address": cfg.Address})
	return client, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/errors"
)

type tokenRevocationStore struct {
	rdb *redis.Client
}

// NewTokenRevocationStore creates the Redis-backed revoked token store.
// Entries expire with the token, so the set never needs sweeping.
func NewTokenRevocationStore(rdb *redis.Client) service.TokenRevocationStore {
	return &tokenRevocationStore{rdb: rdb}
}

func revocationKey(jti string) string {
	return fmt.Sprintf("resguardo:revoked:%s", jti)
}

func (s *tokenRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	// A caller that could not read the token expiry still gets a real
	// revocation, held for the maximum token lifetime.
	if ttl <= 0 {
		ttl = constants.RevokedTokenCacheTTL
	}
	if err := s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err(); err != nil {
		return errors.ErrCache.WithMessage("failed to revoke token").WithError(err)
	}
	return nil
}

func (s *tokenRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, errors.ErrCache.WithError(err)
	}
	return n > 0, nil
}

package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

type stubSiteRepo struct {
	sites map[uuid.UUID]*models.Site
	calls int
}

func (s *stubSiteRepo) Save(ctx context.Context, site *models.Site) error   { return nil }
func (s *stubSiteRepo) Update(ctx context.Context, site *models.Site) error { return nil }

func (s *stubSiteRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	s.calls++
	site, ok := s.sites[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return site, nil
}

func (s *stubSiteRepo) FindAll(ctx context.Context, scope models.Scope) ([]*models.Site, error) {
	return nil, nil
}

func (s *stubSiteRepo) Count(ctx context.Context, scope models.Scope) (int64, error) {
	return 0, nil
}

func (s *stubSiteRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubSiteRepo) GrantAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	return nil
}

func (s *stubSiteRepo) RevokeAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	return nil
}

func (s *stubSiteRepo) AccessibleSiteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func TestSiteOrgCache_ResolvesAndCaches(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	orgID := uuid.New()
	site := models.NewSite(orgID, uuid.New(), "Planta Monterrey")
	repo := &stubSiteRepo{sites: map[uuid.UUID]*models.Site{site.ID: site}}

	cache := NewSiteOrgCache(client, repo, logger.NewNoopLogger())
	ctx := context.Background()

	got, err := cache.OrganizationForSite(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, orgID, got)
	assert.Equal(t, 1, repo.calls)

	// Second lookup is served from cache.
	got, err = cache.OrganizationForSite(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, orgID, got)
	assert.Equal(t, 1, repo.calls)
}

func TestSiteOrgCache_UnknownSite(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	cache := NewSiteOrgCache(client, &stubSiteRepo{sites: map[uuid.UUID]*models.Site{}}, logger.NewNoopLogger())

	_, err = cache.OrganizationForSite(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestSiteOrgCache_RedisDownFallsBackToDatabase(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	mr.Close()

	orgID := uuid.New()
	site := models.NewSite(orgID, uuid.New(), "Bodega Norte")
	repo := &stubSiteRepo{sites: map[uuid.UUID]*models.Site{site.ID: site}}

	cache := NewSiteOrgCache(client, repo, logger.NewNoopLogger())

	got, err := cache.OrganizationForSite(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Equal(t, orgID, got)
}

func TestTokenRevocationStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	store := NewTokenRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", constants.RevokedTokenCacheTTL))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(constants.RevokedTokenCacheTTL)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries expire with the token")
}

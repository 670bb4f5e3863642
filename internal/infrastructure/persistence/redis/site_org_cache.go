package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/resguardo/resguardo/internal/domain/repository"
	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// SiteOrgCache resolves the organization owning a site through two cache
// tiers: an in-process go-cache in front of Redis, with the site table as
// the source of truth. Site ownership never changes after creation, so stale
// reads inside the TTL window are harmless.
type SiteOrgCache struct {
	l1       *gocache.Cache
	rdb      *redis.Client
	siteRepo repository.SiteRepository
	logger   logger.Logger
}

// NewSiteOrgCache creates the two-tier site-to-organization resolver.
func NewSiteOrgCache(rdb *redis.Client, siteRepo repository.SiteRepository, log logger.Logger) service.SiteOrganizationResolver {
	return &SiteOrgCache{
		l1:       gocache.New(constants.SiteOrgCacheL1TTL, 2*constants.SiteOrgCacheL1TTL),
		rdb:      rdb,
		siteRepo: siteRepo,
		logger:   log.WithComponent("site_org_cache"),
	}
}

func siteOrgKey(siteID uuid.UUID) string {
	return fmt.Sprintf("resguardo:site_org:%s", siteID)
}

func (c *SiteOrgCache) OrganizationForSite(ctx context.Context, siteID uuid.UUID) (uuid.UUID, error) {
	key := siteOrgKey(siteID)

	if cached, ok := c.l1.Get(key); ok {
		return cached.(uuid.UUID), nil
	}

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		orgID, parseErr := uuid.Parse(val)
		if parseErr == nil {
			c.l1.Set(key, orgID, gocache.DefaultExpiration)
			return orgID, nil
		}
		// A corrupt entry falls through to the database.
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn(ctx, "redis read failed, falling back to database", logger.Fields{
			"site_id": siteID.String(), "error": err.Error(),
		})
	}

	site, err := c.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		if errors.IsNotFound(err) {
			return uuid.Nil, err
		}
		return uuid.Nil, errors.ErrCache.WithMessage("site organization lookup failed").WithError(err)
	}

	c.l1.Set(key, site.OrganizationID, gocache.DefaultExpiration)
	if err := c.rdb.Set(ctx, key, site.OrganizationID.String(), constants.SiteOrgCacheTTL).Err(); err != nil {
		c.logger.Warn(ctx, "failed to populate redis cache", logger.Fields{
			"site_id": siteID.String(), "error": err.Error(),
		})
	}
	return site.OrganizationID, nil
}

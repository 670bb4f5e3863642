package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// catalogMatchTimeout bounds the server-side match procedure. The procedure
// scans the shared catalog against the site's industry and location, so it
// can take a few seconds on a cold cache.
const catalogMatchTimeout = 15 * time.Second

// CatalogMatcherImpl runs the copy_catalog_to_site procedure over pgx. The
// procedure matches the shared catalog against the site profile, copies the
// matching assets and threats server-side and returns both counts.
type CatalogMatcherImpl struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// NewCatalogMatcher creates the pgx-backed catalog matcher.
func NewCatalogMatcher(pool *pgxpool.Pool, log logger.Logger) service.CatalogMatcher {
	return &CatalogMatcherImpl{pool: pool, logger: log.WithComponent("catalog_matcher")}
}

func (m *CatalogMatcherImpl) Match(ctx context.Context, siteID uuid.UUID) (int, int, error) {
	callCtx, cancel := context.WithTimeout(ctx, catalogMatchTimeout)
	defer cancel()

	start := time.Now()
	var assetsAdded, threatsAdded int
	err := m.pool.QueryRow(callCtx,
		"SELECT assets_added, threats_added FROM copy_catalog_to_site($1)",
		siteID,
	).Scan(&assetsAdded, &threatsAdded)
	if err != nil {
		m.logger.Error(callCtx, "catalog match procedure failed", err, logger.Fields{
			"site_id": siteID.String(),
		})
		return 0, 0, errors.ErrExternalService.WithMessage("catalog match failed").WithError(err)
	}

	m.logger.Info(ctx, "catalog match completed", logger.Fields{
		"site_id":       siteID.String(),
		"assets_added":  assetsAdded,
		"threats_added": threatsAdded,
		"latency_ms":    time.Since(start).Milliseconds(),
	})
	return assetsAdded, threatsAdded, nil
}

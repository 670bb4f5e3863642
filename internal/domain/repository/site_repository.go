package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// SiteRepository defines the interface for site storage, including the
// per-user site access grants.
type SiteRepository interface {
	Save(ctx context.Context, site *models.Site) error
	Update(ctx context.Context, site *models.Site) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error)
	FindAll(ctx context.Context, scope models.Scope) ([]*models.Site, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// GrantAccess records a (user, site) visibility grant.
	GrantAccess(ctx context.Context, userID, siteID uuid.UUID) error

	// RevokeAccess removes a (user, site) visibility grant.
	RevokeAccess(ctx context.Context, userID, siteID uuid.UUID) error

	// AccessibleSiteIDs lists the site ids granted to the user.
	AccessibleSiteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

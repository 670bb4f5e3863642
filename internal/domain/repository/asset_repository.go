package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// AssetRepository defines the interface for asset storage.
type AssetRepository interface {
	Save(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	FindAll(ctx context.Context, scope models.Scope) ([]*models.Asset, error)
	FindBySite(ctx context.Context, siteID uuid.UUID) ([]*models.Asset, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// ScenarioRepository defines the interface for scenario storage.
type ScenarioRepository interface {
	// SaveBatch inserts scenarios one by one and returns the ids that failed.
	// A partial failure is not rolled back; callers aggregate the count.
	SaveBatch(ctx context.Context, scenarios []*models.Scenario) (failed int, err error)

	Update(ctx context.Context, scenario *models.Scenario) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error)
	FindAll(ctx context.Context, scope models.Scope) ([]*models.Scenario, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// PairedThreatIDs returns the threat ids already paired with the asset in
	// the site, i.e. the exclusion set of the pairing wizard.
	PairedThreatIDs(ctx context.Context, siteID uuid.UUID, assetID *uuid.UUID) ([]uuid.UUID, error)

	// CountByAsset returns the number of scenarios attached to the asset.
	CountByAsset(ctx context.Context, siteID uuid.UUID, assetID uuid.UUID) (int64, error)
}

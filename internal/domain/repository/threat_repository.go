package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// ThreatRepository defines the interface for threat storage.
type ThreatRepository interface {
	Save(ctx context.Context, threat *models.Threat) error
	Update(ctx context.Context, threat *models.Threat) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Threat, error)
	FindAll(ctx context.Context, scope models.Scope) ([]*models.Threat, error)
	FindBySite(ctx context.Context, siteID uuid.UUID) ([]*models.Threat, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

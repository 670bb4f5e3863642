// Package repository defines the persistence interfaces for the domain
// aggregates. Implementations live in
// internal/infrastructure/persistence/postgres.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// OrganizationRepository defines the interface for organization storage.
type OrganizationRepository interface {
	// Save persists a new organization.
	Save(ctx context.Context, org *models.Organization) error

	// Update persists changes to an existing organization.
	Update(ctx context.Context, org *models.Organization) error

	// FindByID retrieves an organization by id.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)

	// FindAll retrieves every organization inside the scope.
	FindAll(ctx context.Context, scope models.Scope) ([]*models.Organization, error)

	// Count returns the number of organizations inside the scope.
	Count(ctx context.Context, scope models.Scope) (int64, error)

	// Delete removes an organization by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

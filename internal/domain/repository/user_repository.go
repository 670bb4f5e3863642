package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// UserRepository defines the interface for user profile storage.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, scope models.Scope) ([]*models.User, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

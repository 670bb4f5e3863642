package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/repository"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// UserRepoImpl implements UserRepository using GORM.
type UserRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewUserRepository creates a PostgreSQL-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) repository.UserRepository {
	return &UserRepoImpl{db: db, logger: log.WithComponent("user_repo")}
}

func (r *UserRepoImpl) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.Error(ctx, "failed to create user", err, logger.Fields{"email": user.Email})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *UserRepoImpl) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(user)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

func (r *UserRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("user not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &user, nil
}

func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("user not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &user, nil
}

func (r *UserRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.User, error) {
	var users []*models.User
	tx := scopeUsers(r.db.WithContext(ctx), scope)
	if err := tx.Find(&users).Error; err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return users, nil
}

func (r *UserRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeUsers(r.db.WithContext(ctx).Model(&models.User{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *UserRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

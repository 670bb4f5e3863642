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

// OrganizationRepoImpl implements OrganizationRepository using GORM.
type OrganizationRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewOrganizationRepository creates a PostgreSQL-backed organization repository.
func NewOrganizationRepository(db *gorm.DB, log logger.Logger) repository.OrganizationRepository {
	return &OrganizationRepoImpl{db: db, logger: log.WithComponent("organization_repo")}
}

func (r *OrganizationRepoImpl) Save(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		r.logger.Error(ctx, "failed to create organization", err, logger.Fields{"name": org.Name})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *OrganizationRepoImpl) Update(ctx context.Context, org *models.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", org.ID).
		Updates(org)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("organization not found")
	}
	return nil
}

func (r *OrganizationRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("organization not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &org, nil
}

func (r *OrganizationRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.Organization, error) {
	var orgs []*models.Organization
	tx := scopeOrganizations(r.db.WithContext(ctx), scope)
	if err := tx.Find(&orgs).Error; err != nil {
		r.logger.Error(ctx, "failed to list organizations", err)
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return orgs, nil
}

func (r *OrganizationRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeOrganizations(r.db.WithContext(ctx).Model(&models.Organization{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *OrganizationRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Organization{})
	if result.Error != nil {
		r.logger.Error(ctx, "failed to delete organization", result.Error, logger.Fields{"id": id.String()})
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("organization not found")
	}
	return nil
}

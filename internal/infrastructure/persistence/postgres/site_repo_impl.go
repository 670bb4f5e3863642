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

// SiteRepoImpl implements SiteRepository using GORM. It also owns the
// user_site_access join table backing the visibility grants.
type SiteRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewSiteRepository creates a PostgreSQL-backed site repository.
func NewSiteRepository(db *gorm.DB, log logger.Logger) repository.SiteRepository {
	return &SiteRepoImpl{db: db, logger: log.WithComponent("site_repo")}
}

func (r *SiteRepoImpl) Save(ctx context.Context, site *models.Site) error {
	if err := r.db.WithContext(ctx).Create(site).Error; err != nil {
		r.logger.Error(ctx, "failed to create site", err, logger.Fields{"name": site.Name})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *SiteRepoImpl) Update(ctx context.Context, site *models.Site) error {
	site.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Site{}).
		Where("id = ?", site.ID).
		Updates(site)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("site not found")
	}
	return nil
}

func (r *SiteRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	var site models.Site
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("site not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &site, nil
}

func (r *SiteRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.Site, error) {
	var sites []*models.Site
	tx := scopeSites(r.db.WithContext(ctx), scope)
	if err := tx.Find(&sites).Error; err != nil {
		r.logger.Error(ctx, "failed to list sites", err)
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return sites, nil
}

func (r *SiteRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeSites(r.db.WithContext(ctx).Model(&models.Site{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *SiteRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Site{})
	if result.Error != nil {
		r.logger.Error(ctx, "failed to delete site", result.Error, logger.Fields{"id": id.String()})
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("site not found")
	}
	return nil
}

func (r *SiteRepoImpl) GrantAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	grant := &models.UserSiteAccess{
		UserID:    userID,
		SiteID:    siteID,
		CreatedAt: time.Now().UTC(),
	}
	// Re-granting an existing pair is a no-op.
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND site_id = ?", userID, siteID).
		FirstOrCreate(grant).Error
	if err != nil {
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *SiteRepoImpl) RevokeAccess(ctx context.Context, userID, siteID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND site_id = ?", userID, siteID).
		Delete(&models.UserSiteAccess{}).Error
	if err != nil {
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *SiteRepoImpl) AccessibleSiteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.UserSiteAccess{}).
		Where("user_id = ?", userID).
		Pluck("site_id", &ids).Error
	if err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return ids, nil
}

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

// ThreatRepoImpl implements ThreatRepository using GORM.
type ThreatRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewThreatRepository creates a PostgreSQL-backed threat repository.
func NewThreatRepository(db *gorm.DB, log logger.Logger) repository.ThreatRepository {
	return &ThreatRepoImpl{db: db, logger: log.WithComponent("threat_repo")}
}

func (r *ThreatRepoImpl) Save(ctx context.Context, threat *models.Threat) error {
	if err := r.db.WithContext(ctx).Create(threat).Error; err != nil {
		r.logger.Error(ctx, "failed to create threat", err, logger.Fields{"name": threat.Name})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *ThreatRepoImpl) Update(ctx context.Context, threat *models.Threat) error {
	threat.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Threat{}).
		Where("id = ?", threat.ID).
		Updates(threat)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("threat not found")
	}
	return nil
}

func (r *ThreatRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Threat, error) {
	var threat models.Threat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&threat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("threat not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &threat, nil
}

func (r *ThreatRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.Threat, error) {
	var threats []*models.Threat
	tx := scopeSiteOwned(r.db.WithContext(ctx), scope)
	if err := tx.Find(&threats).Error; err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return threats, nil
}

func (r *ThreatRepoImpl) FindBySite(ctx context.Context, siteID uuid.UUID) ([]*models.Threat, error) {
	var threats []*models.Threat
	err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Find(&threats).Error
	if err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return threats, nil
}

func (r *ThreatRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeSiteOwned(r.db.WithContext(ctx).Model(&models.Threat{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *ThreatRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Threat{})
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("threat not found")
	}
	return nil
}

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

// ScenarioRepoImpl implements ScenarioRepository using GORM.
type ScenarioRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewScenarioRepository creates a PostgreSQL-backed scenario repository.
func NewScenarioRepository(db *gorm.DB, log logger.Logger) repository.ScenarioRepository {
	return &ScenarioRepoImpl{db: db, logger: log.WithComponent("scenario_repo")}
}

// SaveBatch inserts each scenario individually so one duplicate or failed
// row never aborts the rest. The unique pair index absorbs concurrent
// submissions of the same (site, asset, threat) triple.
func (r *ScenarioRepoImpl) SaveBatch(ctx context.Context, scenarios []*models.Scenario) (int, error) {
	failed := 0
	for _, scenario := range scenarios {
		if err := r.db.WithContext(ctx).Create(scenario).Error; err != nil {
			r.logger.Warn(ctx, "scenario insert failed", logger.Fields{
				"threat_id": scenario.ThreatID.String(),
				"error":     err.Error(),
			})
			failed++
		}
	}
	return failed, nil
}

func (r *ScenarioRepoImpl) Update(ctx context.Context, scenario *models.Scenario) error {
	scenario.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Scenario{}).
		Where("id = ?", scenario.ID).
		Updates(scenario)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("scenario not found")
	}
	return nil
}

func (r *ScenarioRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	var scenario models.Scenario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&scenario).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("scenario not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &scenario, nil
}

func (r *ScenarioRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.Scenario, error) {
	var scenarios []*models.Scenario
	tx := scopeSiteOwned(r.db.WithContext(ctx), scope)
	if err := tx.Find(&scenarios).Error; err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return scenarios, nil
}

func (r *ScenarioRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeSiteOwned(r.db.WithContext(ctx).Model(&models.Scenario{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *ScenarioRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Scenario{})
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("scenario not found")
	}
	return nil
}

func (r *ScenarioRepoImpl) PairedThreatIDs(ctx context.Context, siteID uuid.UUID, assetID *uuid.UUID) ([]uuid.UUID, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Scenario{}).
		Where("site_id = ?", siteID)
	if assetID != nil {
		tx = tx.Where("asset_id = ?", *assetID)
	} else {
		tx = tx.Where("asset_id IS NULL")
	}

	var ids []uuid.UUID
	if err := tx.Pluck("threat_id", &ids).Error; err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return ids, nil
}

func (r *ScenarioRepoImpl) CountByAsset(ctx context.Context, siteID uuid.UUID, assetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Scenario{}).
		Where("site_id = ? AND asset_id = ?", siteID, assetID).
		Count(&count).Error
	if err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

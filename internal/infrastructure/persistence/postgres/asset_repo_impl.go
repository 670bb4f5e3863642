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

// AssetRepoImpl implements AssetRepository using GORM.
type AssetRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewAssetRepository creates a PostgreSQL-backed asset repository.
func NewAssetRepository(db *gorm.DB, log logger.Logger) repository.AssetRepository {
	return &AssetRepoImpl{db: db, logger: log.WithComponent("asset_repo")}
}

func (r *AssetRepoImpl) Save(ctx context.Context, asset *models.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		r.logger.Error(ctx, "failed to create asset", err, logger.Fields{"name": asset.Name})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}

func (r *AssetRepoImpl) Update(ctx context.Context, asset *models.Asset) error {
	asset.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", asset.ID).
		Updates(asset)
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("asset not found")
	}
	return nil
}

func (r *AssetRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound.WithMessage("asset not found")
		}
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return &asset, nil
}

func (r *AssetRepoImpl) FindAll(ctx context.Context, scope models.Scope) ([]*models.Asset, error) {
	var assets []*models.Asset
	tx := scopeSiteOwned(r.db.WithContext(ctx), scope)
	if err := tx.Find(&assets).Error; err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return assets, nil
}

func (r *AssetRepoImpl) FindBySite(ctx context.Context, siteID uuid.UUID) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Find(&assets).Error
	if err != nil {
		return nil, errors.ErrDatabaseOperation.WithError(err)
	}
	return assets, nil
}

func (r *AssetRepoImpl) Count(ctx context.Context, scope models.Scope) (int64, error) {
	var count int64
	tx := scopeSiteOwned(r.db.WithContext(ctx).Model(&models.Asset{}), scope)
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.ErrDatabaseOperation.WithError(err)
	}
	return count, nil
}

func (r *AssetRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Asset{})
	if result.Error != nil {
		return errors.ErrDatabaseOperation.WithError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("asset not found")
	}
	return nil
}

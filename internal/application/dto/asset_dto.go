package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/utils"
)

// CreateAssetRequest creates an asset inside a site.
type CreateAssetRequest struct {
	SiteID      uuid.UUID `json:"site_id" binding:"required"`
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Type        string    `json:"type" binding:"omitempty,max=128"`
	Description string    `json:"description"`
	Value       string    `json:"value" binding:"omitempty,oneof=high medium low"`
	Location    string    `json:"location" binding:"omitempty,max=255"`
	Owner       string    `json:"owner" binding:"omitempty,max=255"`
	Status      string    `json:"status" binding:"omitempty,oneof=operational maintenance inactive"`
}

// UpdateAssetRequest updates an asset. Nil fields are left untouched.
type UpdateAssetRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Type        *string `json:"type" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	Value       *string `json:"value" binding:"omitempty,oneof=high medium low"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Owner       *string `json:"owner" binding:"omitempty,max=255"`
	Status      *string `json:"status" binding:"omitempty,oneof=operational maintenance inactive"`
}

// AssetResponse is the API shape of an asset. DisplayCategory is the
// heuristic classification used only for grouping and ordering in lists.
type AssetResponse struct {
	ID              uuid.UUID             `json:"id"`
	SiteID          uuid.UUID             `json:"site_id"`
	Name            string                `json:"name"`
	Type            string                `json:"type"`
	DisplayCategory string                `json:"display_category"`
	Description     string                `json:"description"`
	Value           constants.AssetValue  `json:"value"`
	Location        string                `json:"location"`
	Owner           string                `json:"owner"`
	Status          constants.AssetStatus `json:"status"`
	ScenarioCount   int64                 `json:"scenario_count"`
	CreatedBy       uuid.UUID             `json:"created_by"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// NewAssetResponse converts a domain asset.
func NewAssetResponse(asset *models.Asset) *AssetResponse {
	return &AssetResponse{
		ID:              asset.ID,
		SiteID:          asset.SiteID,
		Name:            asset.Name,
		Type:            asset.Type,
		DisplayCategory: utils.ClassifyAssetType(asset.Type),
		Description:     asset.Description,
		Value:           asset.Value,
		Location:        asset.Location,
		Owner:           asset.Owner,
		Status:          asset.Status,
		CreatedBy:       asset.CreatedBy,
		CreatedAt:       asset.CreatedAt,
		UpdatedAt:       asset.UpdatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Asset is something of value inside a site: people, goods, processes or
// information. Type is free text; display grouping is handled by the keyword
// classifier in pkg/utils, not by this model.
type Asset struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SiteID uuid.UUID `json:"site_id" gorm:"type:uuid;not null;index"`

	Name        string                `json:"name" gorm:"size:255;not null"`
	Type        string                `json:"type" gorm:"size:128"`
	Description string                `json:"description" gorm:"type:text"`
	Value       constants.AssetValue  `json:"value" gorm:"size:16"`
	Location    string                `json:"location" gorm:"size:255"`
	Owner       string                `json:"owner" gorm:"size:255"`
	Status      constants.AssetStatus `json:"status" gorm:"size:32;default:operational"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAsset creates an Asset with a fresh id under the given site.
func NewAsset(siteID, createdBy uuid.UUID, name string) *Asset {
	now := time.Now().UTC()
	return &Asset{
		ID:        uuid.New(),
		SiteID:    siteID,
		Name:      name,
		Status:    constants.AssetStatusOperational,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

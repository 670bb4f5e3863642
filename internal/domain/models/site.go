package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Site is a physical location owned by an organization. Sites own assets,
// threats and scenarios.
type Site struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`

	Name         string `json:"name" gorm:"size:255;not null"`
	IndustryType string `json:"industry_type" gorm:"size:128"`

	LocationCountry string `json:"location_country" gorm:"size:128"`
	LocationState   string `json:"location_state" gorm:"size:128"`
	LocationCity    string `json:"location_city" gorm:"size:128"`
	LocationZone    string `json:"location_zone" gorm:"size:128"`
	LocationAddress string `json:"location_address" gorm:"size:512"`

	LocationType           constants.LocationType `json:"location_type" gorm:"size:32"`
	RiskZoneClassification constants.RiskZone     `json:"risk_zone_classification" gorm:"size:16"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSite creates a Site with a fresh id under the given organization.
func NewSite(organizationID, createdBy uuid.UUID, name string) *Site {
	now := time.Now().UTC()
	return &Site{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           name,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UserSiteAccess grants a consultant or reader visibility into one site.
type UserSiteAccess struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	SiteID    uuid.UUID `json:"site_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the join table singular-free like the rest of the schema.
func (UserSiteAccess) TableName() string {
	return "user_site_access"
}

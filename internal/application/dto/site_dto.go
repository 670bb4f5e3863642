package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

// CreateSiteRequest creates a site and triggers the catalog bootstrap.
type CreateSiteRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
	Name           string    `json:"name" binding:"required,min=2,max=255"`
	IndustryType   string    `json:"industry_type" binding:"omitempty,max=128"`

	LocationCountry string `json:"location_country" binding:"omitempty,max=128"`
	LocationState   string `json:"location_state" binding:"omitempty,max=128"`
	LocationCity    string `json:"location_city" binding:"omitempty,max=128"`
	LocationZone    string `json:"location_zone" binding:"omitempty,max=128"`
	LocationAddress string `json:"location_address" binding:"omitempty,max=512"`

	LocationType           string `json:"location_type" binding:"omitempty,oneof=office plant warehouse home transit"`
	RiskZoneClassification string `json:"risk_zone_classification" binding:"omitempty,oneof=high medium low"`
}

// UpdateSiteRequest updates an existing site. Nil fields are left untouched.
type UpdateSiteRequest struct {
	Name                   *string `json:"name" binding:"omitempty,min=2,max=255"`
	IndustryType           *string `json:"industry_type" binding:"omitempty,max=128"`
	LocationCountry        *string `json:"location_country" binding:"omitempty,max=128"`
	LocationState          *string `json:"location_state" binding:"omitempty,max=128"`
	LocationCity           *string `json:"location_city" binding:"omitempty,max=128"`
	LocationZone           *string `json:"location_zone" binding:"omitempty,max=128"`
	LocationAddress        *string `json:"location_address" binding:"omitempty,max=512"`
	LocationType           *string `json:"location_type" binding:"omitempty,oneof=office plant warehouse home transit"`
	RiskZoneClassification *string `json:"risk_zone_classification" binding:"omitempty,oneof=high medium low"`
}

// SiteResponse is the API shape of a site.
type SiteResponse struct {
	ID                     uuid.UUID              `json:"id"`
	OrganizationID         uuid.UUID              `json:"organization_id"`
	Name                   string                 `json:"name"`
	IndustryType           string                 `json:"industry_type"`
	LocationCountry        string                 `json:"location_country"`
	LocationState          string                 `json:"location_state"`
	LocationCity           string                 `json:"location_city"`
	LocationZone           string                 `json:"location_zone"`
	LocationAddress        string                 `json:"location_address"`
	LocationType           constants.LocationType `json:"location_type"`
	RiskZoneClassification constants.RiskZone     `json:"risk_zone_classification"`
	CreatedBy              uuid.UUID              `json:"created_by"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// BootstrapReport tells the caller which path populated the new site and how
// many records were added, so the console can render a progress message.
type BootstrapReport struct {
	Path         constants.BootstrapPath `json:"path"`
	AssetsAdded  int                     `json:"assets_added"`
	ThreatsAdded int                     `json:"threats_added"`
	Warning      string                  `json:"warning,omitempty"`
}

// CreateSiteResponse pairs the created site with its bootstrap report.
type CreateSiteResponse struct {
	Site      *SiteResponse    `json:"site"`
	Bootstrap *BootstrapReport `json:"bootstrap"`
}

// NewSiteResponse converts a domain site.
func NewSiteResponse(site *models.Site) *SiteResponse {
	return &SiteResponse{
		ID:                     site.ID,
		OrganizationID:         site.OrganizationID,
		Name:                   site.Name,
		IndustryType:           site.IndustryType,
		LocationCountry:        site.LocationCountry,
		LocationState:          site.LocationState,
		LocationCity:           site.LocationCity,
		LocationZone:           site.LocationZone,
		LocationAddress:        site.LocationAddress,
		LocationType:           site.LocationType,
		RiskZoneClassification: site.RiskZoneClassification,
		CreatedBy:              site.CreatedBy,
		CreatedAt:              site.CreatedAt,
		UpdatedAt:              site.UpdatedAt,
	}
}

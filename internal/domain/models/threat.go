package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Threat is a hazard cataloged against a site.
type Threat struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SiteID uuid.UUID `json:"site_id" gorm:"type:uuid;not null;index"`

	Name               string                   `json:"name" gorm:"size:255;not null"`
	Category           constants.ThreatCategory `json:"category" gorm:"size:32"`
	Description        string                   `json:"description" gorm:"type:text"`
	Probability        constants.Likelihood     `json:"probability" gorm:"size:16"`
	Impact             constants.Likelihood     `json:"impact" gorm:"size:16"`
	RiskLevel          constants.RiskLevel      `json:"risk_level" gorm:"size:16"`
	MitigationMeasures string                   `json:"mitigation_measures" gorm:"type:text"`
	Status             constants.ThreatStatus   `json:"status" gorm:"size:32;default:active"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewThreat creates a Threat with a fresh id under the given site.
func NewThreat(siteID, createdBy uuid.UUID, name string) *Threat {
	now := time.Now().UTC()
	return &Threat{
		ID:        uuid.New(),
		SiteID:    siteID,
		Name:      name,
		Status:    constants.ThreatStatusActive,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

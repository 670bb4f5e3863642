package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

// CreateThreatRequest creates a threat inside a site.
type CreateThreatRequest struct {
	SiteID             uuid.UUID `json:"site_id" binding:"required"`
	Name               string    `json:"name" binding:"required,min=2,max=255"`
	Category           string    `json:"category" binding:"omitempty,oneof=natural technological social environmental"`
	Description        string    `json:"description"`
	Probability        string    `json:"probability" binding:"omitempty,oneof=high medium low"`
	Impact             string    `json:"impact" binding:"omitempty,oneof=high medium low"`
	RiskLevel          string    `json:"risk_level" binding:"omitempty,oneof=critical high medium low"`
	MitigationMeasures string    `json:"mitigation_measures"`
	Status             string    `json:"status" binding:"omitempty,oneof=active mitigated monitoring"`
}

// UpdateThreatRequest updates a threat. Nil fields are left untouched.
type UpdateThreatRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=2,max=255"`
	Category           *string `json:"category" binding:"omitempty,oneof=natural technological social environmental"`
	Description        *string `json:"description"`
	Probability        *string `json:"probability" binding:"omitempty,oneof=high medium low"`
	Impact             *string `json:"impact" binding:"omitempty,oneof=high medium low"`
	RiskLevel          *string `json:"risk_level" binding:"omitempty,oneof=critical high medium low"`
	MitigationMeasures *string `json:"mitigation_measures"`
	Status             *string `json:"status" binding:"omitempty,oneof=active mitigated monitoring"`
}

// ThreatResponse is the API shape of a threat.
type ThreatResponse struct {
	ID                 uuid.UUID                `json:"id"`
	SiteID             uuid.UUID                `json:"site_id"`
	Name               string                   `json:"name"`
	Category           constants.ThreatCategory `json:"category"`
	Description        string                   `json:"description"`
	Probability        constants.Likelihood     `json:"probability"`
	Impact             constants.Likelihood     `json:"impact"`
	RiskLevel          constants.RiskLevel      `json:"risk_level"`
	MitigationMeasures string                   `json:"mitigation_measures"`
	Status             constants.ThreatStatus   `json:"status"`
	CreatedBy          uuid.UUID                `json:"created_by"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// NewThreatResponse converts a domain threat.
func NewThreatResponse(threat *models.Threat) *ThreatResponse {
	return &ThreatResponse{
		ID:                 threat.ID,
		SiteID:             threat.SiteID,
		Name:               threat.Name,
		Category:           threat.Category,
		Description:        threat.Description,
		Probability:        threat.Probability,
		Impact:             threat.Impact,
		RiskLevel:          threat.RiskLevel,
		MitigationMeasures: threat.MitigationMeasures,
		Status:             threat.Status,
		CreatedBy:          threat.CreatedBy,
		CreatedAt:          threat.CreatedAt,
		UpdatedAt:          threat.UpdatedAt,
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

// PairingOptionsRequest asks for the wizard state of one (site, asset) pair.
type PairingOptionsRequest struct {
	SiteID  uuid.UUID  `form:"site_id" binding:"required"`
	AssetID *uuid.UUID `form:"asset_id"`
}

// ThreatOption is one selectable row of the pairing wizard. AlreadyPaired
// threats are rendered disabled and toggling them is a no-op.
type ThreatOption struct {
	ThreatID      uuid.UUID                `json:"threat_id"`
	Name          string                   `json:"name"`
	Category      constants.ThreatCategory `json:"category"`
	RiskLevel     constants.RiskLevel      `json:"risk_level"`
	AlreadyPaired bool                     `json:"already_paired"`
}

// PairingOptionsResponse is the wizard state: every threat of the site with
// its paired flag, plus the selectable count.
type PairingOptionsResponse struct {
	SiteID          uuid.UUID      `json:"site_id"`
	AssetID         *uuid.UUID     `json:"asset_id,omitempty"`
	Threats         []ThreatOption `json:"threats"`
	SelectableCount int            `json:"selectable_count"`
	PairedCount     int            `json:"paired_count"`
}

// CreateScenariosRequest commits the wizard selection: one scenario per
// selected threat.
type CreateScenariosRequest struct {
	SiteID    uuid.UUID   `json:"site_id" binding:"required"`
	AssetID   *uuid.UUID  `json:"asset_id"`
	ThreatIDs []uuid.UUID `json:"threat_ids" binding:"required,min=1"`
}

// CreateScenariosResponse reports the batch outcome plus the refreshed
// exclusion set so the wizard updates without a full reload.
type CreateScenariosResponse struct {
	Requested       int         `json:"requested"`
	Created         int         `json:"created"`
	Skipped         int         `json:"skipped"`
	Failed          int         `json:"failed"`
	PairedThreatIDs []uuid.UUID `json:"paired_threat_ids"`
	ScenarioCount   int64       `json:"scenario_count"`
}

// UpdateScenarioRequest moves a scenario through its evaluation lifecycle.
type UpdateScenarioRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_evaluation evaluated"`
}

// ScenarioResponse is the API shape of a scenario.
type ScenarioResponse struct {
	ID        uuid.UUID                `json:"id"`
	SiteID    uuid.UUID                `json:"site_id"`
	AssetID   *uuid.UUID               `json:"asset_id,omitempty"`
	ThreatID  uuid.UUID                `json:"threat_id"`
	Status    constants.ScenarioStatus `json:"status"`
	CreatedBy uuid.UUID                `json:"created_by"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// NewScenarioResponse converts a domain scenario.
func NewScenarioResponse(s *models.Scenario) *ScenarioResponse {
	return &ScenarioResponse{
		ID:        s.ID,
		SiteID:    s.SiteID,
		AssetID:   s.AssetID,
		ThreatID:  s.ThreatID,
		Status:    s.Status,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Scenario pairs one asset with one threat inside a site for risk evaluation.
// At most one scenario may exist per (site, asset, threat) triple. The
// application pre-checks existing pairs; two unique indexes back that up under
// concurrent submission, because postgres treats NULL asset_id values as
// distinct: ux_scenario_pair covers asset-scoped pairs and the partial
// ux_scenario_site_pair covers site-level pairs (asset_id IS NULL).
type Scenario struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SiteID   uuid.UUID  `json:"site_id" gorm:"type:uuid;not null;index;uniqueIndex:ux_scenario_pair;uniqueIndex:ux_scenario_site_pair,where:asset_id IS NULL"`
	AssetID  *uuid.UUID `json:"asset_id,omitempty" gorm:"type:uuid;index;uniqueIndex:ux_scenario_pair"`
	ThreatID uuid.UUID  `json:"threat_id" gorm:"type:uuid;not null;uniqueIndex:ux_scenario_pair;uniqueIndex:ux_scenario_site_pair"`

	Status constants.ScenarioStatus `json:"status" gorm:"size:32;default:pending"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScenario creates a pending Scenario pairing the asset and threat.
func NewScenario(siteID uuid.UUID, assetID *uuid.UUID, threatID, createdBy uuid.UUID) *Scenario {
	now := time.Now().UTC()
	return &Scenario{
		ID:        uuid.New(),
		SiteID:    siteID,
		AssetID:   assetID,
		ThreatID:  threatID,
		Status:    constants.ScenarioPending,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsEvaluated reports whether the scenario finished evaluation.
func (s *Scenario) IsEvaluated() bool {
	return s.Status == constants.ScenarioEvaluated
}

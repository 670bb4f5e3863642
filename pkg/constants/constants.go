// Package constants defines system-wide constants for the Resguardo risk console.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Role Constants
// ================================================================================

// Role represents the access role assigned to a user.
type Role string

const (
	// RoleSuperAdmin has unrestricted access across every organization.
	RoleSuperAdmin Role = "super_admin"

	// RoleAdmin manages data across all organizations but cannot remove them.
	RoleAdmin Role = "admin"

	// RoleConsultant works inside explicitly granted sites.
	RoleConsultant Role = "consultant"

	// RoleReader has read-only access to explicitly granted sites.
	RoleReader Role = "reader"
)

// ValidRoles lists every accepted role value.
var ValidRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleConsultant, RoleReader}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleConsultant, RoleReader:
		return true
	}
	return false
}

// IsScoped reports whether the role is restricted to granted sites.
func (r Role) IsScoped() bool {
	return r == RoleConsultant || r == RoleReader
}

// ================================================================================
// Entity Constants
// ================================================================================

// Entity identifies a managed record kind for capability and audit purposes.
type Entity string

const (
	EntityOrganization Entity = "organization"
	EntitySite         Entity = "site"
	EntityUser         Entity = "user"
	EntityAsset        Entity = "asset"
	EntityThreat       Entity = "threat"
	EntityScenario     Entity = "scenario"
	EntityFeedback     Entity = "feedback"
)

// Action identifies a mutating operation a role may perform on an entity.
type Action string

const (
	ActionCreate     Action = "create"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionBulkDelete Action = "bulk_delete"
)

// ================================================================================
// License Constants
// ================================================================================

// LicenseType represents the commercial tier of an organization or user.
type LicenseType string

const (
	LicenseFree LicenseType = "free"
	LicensePro  LicenseType = "pro"
)

// ================================================================================
// Site Constants
// ================================================================================

// LocationType classifies the physical nature of a site.
type LocationType string

const (
	LocationOffice    LocationType = "office"
	LocationPlant     LocationType = "plant"
	LocationWarehouse LocationType = "warehouse"
	LocationHome      LocationType = "home"
	LocationTransit   LocationType = "transit"
)

// RiskZone classifies the geographic risk zone of a site.
type RiskZone string

const (
	RiskZoneHigh   RiskZone = "high"
	RiskZoneMedium RiskZone = "medium"
	RiskZoneLow    RiskZone = "low"
)

// ================================================================================
// Asset Constants
// ================================================================================

// AssetValue grades the criticality of an asset.
type AssetValue string

const (
	AssetValueHigh   AssetValue = "high"
	AssetValueMedium AssetValue = "medium"
	AssetValueLow    AssetValue = "low"
)

// AssetStatus represents the operational status of an asset.
type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "operational"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusInactive    AssetStatus = "inactive"
)

// ================================================================================
// Threat Constants
// ================================================================================

// ThreatCategory classifies the origin of a threat.
type ThreatCategory string

const (
	ThreatNatural       ThreatCategory = "natural"
	ThreatTechnological ThreatCategory = "technological"
	ThreatSocial        ThreatCategory = "social"
	ThreatEnvironmental ThreatCategory = "environmental"
)

// Likelihood grades probability or impact of a threat.
type Likelihood string

const (
	LikelihoodHigh   Likelihood = "high"
	LikelihoodMedium Likelihood = "medium"
	LikelihoodLow    Likelihood = "low"
)

// RiskLevel grades the combined risk of a threat.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// ThreatStatus represents the mitigation lifecycle of a threat.
type ThreatStatus string

const (
	ThreatStatusActive     ThreatStatus = "active"
	ThreatStatusMitigated  ThreatStatus = "mitigated"
	ThreatStatusMonitoring ThreatStatus = "monitoring"
)

// ================================================================================
// Scenario Constants
// ================================================================================

// ScenarioStatus represents the evaluation lifecycle of a scenario.
type ScenarioStatus string

const (
	ScenarioPending      ScenarioStatus = "pending"
	ScenarioInEvaluation ScenarioStatus = "in_evaluation"
	ScenarioEvaluated    ScenarioStatus = "evaluated"
)

// ================================================================================
// Bootstrap Constants
// ================================================================================

// BootstrapPath records which path populated a freshly created site.
type BootstrapPath string

const (
	// BootstrapCatalog means the shared catalog matched and copied records.
	BootstrapCatalog BootstrapPath = "catalog"

	// BootstrapAIGenerated means the AI fallback produced the records.
	BootstrapAIGenerated BootstrapPath = "ai_generated"

	// BootstrapNone means both paths produced zero records without erroring.
	BootstrapNone BootstrapPath = "none"

	// BootstrapFailed means the bootstrap errored; the site itself still exists.
	BootstrapFailed BootstrapPath = "failed"
)

// ================================================================================
// Cache Constants
// ================================================================================

const (
	// SiteOrgCacheTTL is the cache lifetime for site to organization resolution.
	SiteOrgCacheTTL = 30 * time.Minute

	// SiteOrgCacheL1TTL is the in-memory cache lifetime in front of redis.
	SiteOrgCacheL1TTL = 5 * time.Minute

	// RevokedTokenCacheTTL is the cache lifetime for revoked token identifiers.
	RevokedTokenCacheTTL = 24 * time.Hour

	// RateLimitWindowTTL is the fixed window used by the request rate limiter.
	RateLimitWindowTTL = 1 * time.Minute
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is a typed key for values stored in request contexts.
type ContextKey string

const (
	// ContextKeyPrincipal carries the authenticated principal.
	ContextKeyPrincipal ContextKey = "principal"

	// ContextKeyTraceID carries the request trace identifier.
	ContextKeyTraceID ContextKey = "trace_id"
)

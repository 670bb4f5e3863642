// Package service defines the domain services and the contracts of the
// external collaborators the use cases depend on.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// AuditService records one audit event per mutating operation.
// Implementations: gorm sink and kafka producer in internal/infrastructure/audit.
type AuditService interface {
	LogEvent(ctx context.Context, event models.AuditEvent) error
}

// CatalogMatcher runs the server-side catalog match procedure for a freshly
// created site and reports how many records it copied.
type CatalogMatcher interface {
	Match(ctx context.Context, siteID uuid.UUID) (assetsAdded, threatsAdded int, err error)
}

// GenerationRequest is the payload for the AI fallback call.
type GenerationRequest struct {
	SiteID          uuid.UUID `json:"site_id"`
	SiteName        string    `json:"site_name"`
	IndustryType    string    `json:"industry_type"`
	LocationType    string    `json:"location_type"`
	LocationCountry string    `json:"location_country"`
	UserID          uuid.UUID `json:"user_id"`
}

// GenerationResult is the structured outcome of the AI fallback call.
type GenerationResult struct {
	Success      bool `json:"success"`
	AssetsAdded  int  `json:"assets_added"`
	ThreatsAdded int  `json:"threats_added"`
}

// AIGenerator invokes the external generation endpoint. A malformed response
// must surface as a recoverable error, never a panic.
type AIGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

// AvatarStore is the object storage contract for user avatars.
type AvatarStore interface {
	// Upload stores content under a user-scoped path and returns the public URL.
	Upload(ctx context.Context, path string, content []byte, contentType string) (string, error)

	// Delete removes the object at the given path.
	Delete(ctx context.Context, path string) error
}

// ProvisionRequest is the payload for the external user-provisioning endpoint.
type ProvisionRequest struct {
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	FullName       string      `json:"full_name"`
	Role           string      `json:"role"`
	OrganizationID *uuid.UUID  `json:"organization_id,omitempty"`
	SiteIDs        []uuid.UUID `json:"site_ids"`
}

// UserProvisioner creates an account plus its role, organization and site
// grants atomically on the provider side; the caller sees one success or one
// failure.
type UserProvisioner interface {
	Provision(ctx context.Context, req ProvisionRequest) (uuid.UUID, error)
}

// SiteOrganizationResolver resolves the organization owning a site. The
// production implementation caches resolutions (go-cache L1, redis L2).
type SiteOrganizationResolver interface {
	OrganizationForSite(ctx context.Context, siteID uuid.UUID) (uuid.UUID, error)
}

// SiteAccessLister lists the site ids a scoped user was granted.
type SiteAccessLister interface {
	AccessibleSiteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// TokenRevocationStore tracks revoked token identifiers until they expire.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

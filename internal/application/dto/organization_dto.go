package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

// CreateOrganizationRequest creates a new organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	LicenseType  string `json:"license_type" binding:"omitempty,oneof=free pro"`
	LicenseLimit int    `json:"license_limit" binding:"omitempty,min=0"`
}

// UpdateOrganizationRequest updates an existing organization. Nil fields are
// left untouched.
type UpdateOrganizationRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	LicenseType  *string `json:"license_type" binding:"omitempty,oneof=free pro"`
	LicenseLimit *int    `json:"license_limit" binding:"omitempty,min=0"`
}

// OrganizationResponse is the API shape of an organization.
type OrganizationResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	LicenseType  constants.LicenseType `json:"license_type"`
	LicenseLimit int                   `json:"license_limit"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewOrganizationResponse converts a domain organization.
func NewOrganizationResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:           org.ID,
		Name:         org.Name,
		LicenseType:  org.LicenseType,
		LicenseLimit: org.LicenseLimit,
		CreatedAt:    org.CreatedAt,
		UpdatedAt:    org.UpdatedAt,
	}
}

// Package models defines the domain models for the Resguardo risk console.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Organization is the tenant root. Every site, and transitively every asset,
// threat and scenario, belongs to exactly one organization.
type Organization struct {
	ID           uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string                `json:"name" gorm:"size:255;not null"`
	LicenseType  constants.LicenseType `json:"license_type" gorm:"size:16;default:free"`
	LicenseLimit int                   `json:"license_limit" gorm:"default:0"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewOrganization creates an Organization with a fresh id and the free tier.
func NewOrganization(name string) *Organization {
	now := time.Now().UTC()
	return &Organization{
		ID:          uuid.New(),
		Name:        name,
		LicenseType: constants.LicenseFree,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsPro reports whether the organization is on the pro tier.
func (o *Organization) IsPro() bool {
	return o.LicenseType == constants.LicensePro
}

// WithinLicenseLimit reports whether count more users fit under the license.
// A zero limit means unlimited.
func (o *Organization) WithinLicenseLimit(current, count int) bool {
	if o.LicenseLimit <= 0 {
		return true
	}
	return current+count <= o.LicenseLimit
}

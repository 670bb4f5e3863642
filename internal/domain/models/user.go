package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// User is a console account. Accounts are provisioned by the external
// identity backend; this table mirrors the profile the console needs.
type User struct {
	ID             uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string                `json:"email" gorm:"size:255;not null;uniqueIndex"`
	FullName       string                `json:"full_name" gorm:"size:255"`
	Role           constants.Role        `json:"role" gorm:"size:32;not null;default:reader"`
	OrganizationID *uuid.UUID            `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	LicenseType    constants.LicenseType `json:"license_type" gorm:"size:16;default:free"`
	AvatarURL      string                `json:"avatar_url" gorm:"size:1024"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// IsAdmin reports whether the user holds an organization-wide role.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleSuperAdmin || u.Role == constants.RoleAdmin
}

// NeedsSiteGrants reports whether the user only sees explicitly granted sites.
func (u *User) NeedsSiteGrants() bool {
	return u.Role.IsScoped()
}

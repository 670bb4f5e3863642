package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
)

// CreateUserRequest provisions a new console account through the external
// identity backend.
type CreateUserRequest struct {
	Email          string      `json:"email" binding:"required,email"`
	Password       string      `json:"password" binding:"required,min=8"`
	FullName       string      `json:"full_name" binding:"required,min=2,max=255"`
	Role           string      `json:"role" binding:"required,oneof=super_admin admin consultant reader"`
	OrganizationID *uuid.UUID  `json:"organization_id"`
	SiteIDs        []uuid.UUID `json:"site_ids"`
}

// UpdateUserRequest updates a user's profile. Nil fields are left untouched.
type UpdateUserRequest struct {
	FullName       *string     `json:"full_name" binding:"omitempty,min=2,max=255"`
	Role           *string     `json:"role" binding:"omitempty,oneof=super_admin admin consultant reader"`
	OrganizationID *uuid.UUID  `json:"organization_id"`
	SiteIDs        []uuid.UUID `json:"site_ids"`
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	ID             uuid.UUID             `json:"id"`
	Email          string                `json:"email"`
	FullName       string                `json:"full_name"`
	Role           constants.Role        `json:"role"`
	OrganizationID *uuid.UUID            `json:"organization_id,omitempty"`
	LicenseType    constants.LicenseType `json:"license_type"`
	AvatarURL      string                `json:"avatar_url,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// AvatarResponse reports the public URL after an avatar upload.
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		LicenseType:    user.LicenseType,
		AvatarURL:      user.AvatarURL,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

package models

import (
	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// Principal is the authenticated caller extracted from the request token.
type Principal struct {
	UserID         uuid.UUID
	Email          string
	Role           constants.Role
	OrganizationID *uuid.UUID
}

// Selection carries the two ambient console selectors sent with list
// requests: the selected organization and the selected site, either of which
// may be absent.
type Selection struct {
	OrganizationID *uuid.UUID
	SiteID         *uuid.UUID
}

package models

import "github.com/google/uuid"

// Scope is the set of filter predicates the visibility rules computed for one
// request. Repositories apply it uniformly to every list and count query.
//
// Semantics:
//   - Empty true: the caller may see nothing; queries return no rows.
//   - OrganizationIDs nil: no organization restriction.
//   - SiteIDs nil: no direct site restriction; site-owned entities fall back
//     to the organization restriction via the owning site.
type Scope struct {
	Empty           bool
	OrganizationIDs []uuid.UUID
	SiteIDs         []uuid.UUID
}

// Unrestricted is the widest scope: every organization and site.
func Unrestricted() Scope {
	return Scope{}
}

// EmptyScope is the scope that matches nothing.
func EmptyScope() Scope {
	return Scope{Empty: true}
}

// RestrictsSites reports whether the scope names an explicit site set.
func (s Scope) RestrictsSites() bool {
	return s.SiteIDs != nil
}

// RestrictsOrganizations reports whether the scope names an explicit
// organization set.
func (s Scope) RestrictsOrganizations() bool {
	return s.OrganizationIDs != nil
}

// AllowsSite reports whether the given site id is inside the scope. A scope
// without a site restriction allows every site.
func (s Scope) AllowsSite(siteID uuid.UUID) bool {
	if s.Empty {
		return false
	}
	if s.SiteIDs == nil {
		return true
	}
	for _, id := range s.SiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

package postgres

import (
	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// matchNothing is a predicate no row satisfies, used for the empty scope.
const matchNothing = "1 = 0"

// scopeSiteOwned applies a visibility scope to a query over a site-owned
// table. An explicit site set filters directly; otherwise an organization
// set restricts through the owning site.
func scopeSiteOwned(tx *gorm.DB, scope models.Scope) *gorm.DB {
	if scope.Empty {
		return tx.Where(matchNothing)
	}
	if scope.RestrictsSites() {
		return tx.Where("site_id IN ?", scope.SiteIDs)
	}
	if scope.RestrictsOrganizations() {
		return tx.Where("site_id IN (SELECT id FROM sites WHERE organization_id IN ?)", scope.OrganizationIDs)
	}
	return tx
}

// scopeSites applies a visibility scope to a query over the sites table.
func scopeSites(tx *gorm.DB, scope models.Scope) *gorm.DB {
	if scope.Empty {
		return tx.Where(matchNothing)
	}
	if scope.RestrictsSites() {
		return tx.Where("id IN ?", scope.SiteIDs)
	}
	if scope.RestrictsOrganizations() {
		return tx.Where("organization_id IN ?", scope.OrganizationIDs)
	}
	return tx
}

// scopeOrganizations applies a visibility scope to a query over the
// organizations table. A site-restricted scope narrows to the organizations
// owning those sites.
func scopeOrganizations(tx *gorm.DB, scope models.Scope) *gorm.DB {
	if scope.Empty {
		return tx.Where(matchNothing)
	}
	if scope.RestrictsOrganizations() {
		return tx.Where("id IN ?", scope.OrganizationIDs)
	}
	if scope.RestrictsSites() {
		return tx.Where("id IN (SELECT organization_id FROM sites WHERE id IN ?)", scope.SiteIDs)
	}
	return tx
}

// scopeUsers applies a visibility scope to a query over the users table.
// Users attach to organizations, never directly to sites.
func scopeUsers(tx *gorm.DB, scope models.Scope) *gorm.DB {
	if scope.Empty {
		return tx.Where(matchNothing)
	}
	if scope.RestrictsOrganizations() {
		return tx.Where("organization_id IN ?", scope.OrganizationIDs)
	}
	return tx
}

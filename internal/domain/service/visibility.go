package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// VisibilityResolver computes the query scope for one request from the
// caller's role and the ambient organization/site selection. The returned
// Scope is applied uniformly by every repository; the resolver itself has no
// side effects.
type VisibilityResolver interface {
	Resolve(ctx context.Context, principal models.Principal, sel models.Selection) (models.Scope, error)
}

type visibilityResolver struct {
	access  SiteAccessLister
	siteOrg SiteOrganizationResolver
	logger  logger.Logger
}

// NewVisibilityResolver creates the production visibility resolver.
func NewVisibilityResolver(access SiteAccessLister, siteOrg SiteOrganizationResolver, log logger.Logger) VisibilityResolver {
	return &visibilityResolver{
		access:  access,
		siteOrg: siteOrg,
		logger:  log.WithComponent("visibility"),
	}
}

// Resolve applies the role rules:
//   - super_admin/admin see everything; a selected organization narrows every
//     list, a selected site takes precedence over the organization.
//   - consultant/reader are pre-filtered to their granted sites before any
//     manual selection is applied.
//
// A failed site→organization lookup degrades to a scope without the
// organization restriction and logs a data-consistency warning; it never
// fails the request.
func (r *visibilityResolver) Resolve(ctx context.Context, principal models.Principal, sel models.Selection) (models.Scope, error) {
	if !principal.Role.IsScoped() {
		return r.resolveAdmin(ctx, sel), nil
	}
	return r.resolveScoped(ctx, principal, sel)
}

func (r *visibilityResolver) resolveAdmin(ctx context.Context, sel models.Selection) models.Scope {
	if sel.SiteID != nil {
		scope := models.Scope{SiteIDs: []uuid.UUID{*sel.SiteID}}
		orgID, err := r.siteOrg.OrganizationForSite(ctx, *sel.SiteID)
		if err != nil {
			r.logger.Warn(ctx, "could not resolve organization for selected site",
				logger.Fields{"site_id": sel.SiteID.String(), "error": err.Error()})
			return scope
		}
		scope.OrganizationIDs = []uuid.UUID{orgID}
		return scope
	}
	if sel.OrganizationID != nil {
		return models.Scope{OrganizationIDs: []uuid.UUID{*sel.OrganizationID}}
	}
	return models.Unrestricted()
}

func (r *visibilityResolver) resolveScoped(ctx context.Context, principal models.Principal, sel models.Selection) (models.Scope, error) {
	granted, err := r.access.AccessibleSiteIDs(ctx, principal.UserID)
	if err != nil {
		return models.EmptyScope(), errors.ErrDatabaseOperation.
			WithMessage("failed to load site access grants").WithError(err)
	}
	if len(granted) == 0 {
		return models.EmptyScope(), nil
	}

	// Resolve the owning organization of every granted site. Unresolvable
	// sites stay visible site-wise but contribute no organization; that is a
	// data-consistency warning, not a failure.
	siteOrgs := make(map[uuid.UUID]uuid.UUID, len(granted))
	var orgIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, siteID := range granted {
		orgID, err := r.siteOrg.OrganizationForSite(ctx, siteID)
		if err != nil {
			r.logger.Warn(ctx, "could not resolve organization for granted site",
				logger.Fields{"site_id": siteID.String(), "error": err.Error()})
			continue
		}
		siteOrgs[siteID] = orgID
		if !seen[orgID] {
			seen[orgID] = true
			orgIDs = append(orgIDs, orgID)
		}
	}
	if orgIDs == nil {
		orgIDs = []uuid.UUID{}
	}

	if sel.SiteID != nil {
		if !contains(granted, *sel.SiteID) {
			return models.EmptyScope(), nil
		}
		scope := models.Scope{SiteIDs: []uuid.UUID{*sel.SiteID}, OrganizationIDs: orgIDs}
		if orgID, ok := siteOrgs[*sel.SiteID]; ok {
			scope.OrganizationIDs = []uuid.UUID{orgID}
		}
		return scope, nil
	}

	if sel.OrganizationID != nil {
		if !contains(orgIDs, *sel.OrganizationID) {
			return models.EmptyScope(), nil
		}
		var siteIDs []uuid.UUID
		for _, siteID := range granted {
			if siteOrgs[siteID] == *sel.OrganizationID {
				siteIDs = append(siteIDs, siteID)
			}
		}
		if len(siteIDs) == 0 {
			return models.EmptyScope(), nil
		}
		return models.Scope{SiteIDs: siteIDs, OrganizationIDs: []uuid.UUID{*sel.OrganizationID}}, nil
	}

	return models.Scope{SiteIDs: granted, OrganizationIDs: orgIDs}, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

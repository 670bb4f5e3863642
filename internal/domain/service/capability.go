package service

import (
	"github.com/resguardo/resguardo/pkg/constants"
)

// CapabilitySet is the set of mutating actions a role may perform on one
// entity kind. Screens consume it as a table instead of inlining role checks.
type CapabilitySet struct {
	Create     bool `json:"create"`
	Edit       bool `json:"edit"`
	Delete     bool `json:"delete"`
	BulkDelete bool `json:"bulk_delete"`
}

// Allows reports whether the set permits the given action.
func (c CapabilitySet) Allows(action constants.Action) bool {
	switch action {
	case constants.ActionCreate:
		return c.Create
	case constants.ActionEdit:
		return c.Edit
	case constants.ActionDelete:
		return c.Delete
	case constants.ActionBulkDelete:
		return c.BulkDelete
	}
	return false
}

var (
	fullAccess = CapabilitySet{Create: true, Edit: true, Delete: true, BulkDelete: true}
	editOnly   = CapabilitySet{Edit: true}
	createEdit = CapabilitySet{Create: true, Edit: true}
	noAccess   = CapabilitySet{}
)

// capabilityTable is the static role × entity permission matrix. Feedback is
// intentionally writable by every authenticated role.
var capabilityTable = map[constants.Role]map[constants.Entity]CapabilitySet{
	constants.RoleSuperAdmin: {
		constants.EntityOrganization: fullAccess,
		constants.EntitySite:         fullAccess,
		constants.EntityUser:         fullAccess,
		constants.EntityAsset:        fullAccess,
		constants.EntityThreat:       fullAccess,
		constants.EntityScenario:     fullAccess,
		constants.EntityFeedback:     createEdit,
	},
	constants.RoleAdmin: {
		constants.EntityOrganization: editOnly,
		constants.EntitySite:         fullAccess,
		constants.EntityUser:         fullAccess,
		constants.EntityAsset:        fullAccess,
		constants.EntityThreat:       fullAccess,
		constants.EntityScenario:     fullAccess,
		constants.EntityFeedback:     createEdit,
	},
	constants.RoleConsultant: {
		constants.EntityOrganization: noAccess,
		constants.EntitySite:         noAccess,
		constants.EntityUser:         noAccess,
		constants.EntityAsset:        createEdit,
		constants.EntityThreat:       createEdit,
		constants.EntityScenario:     createEdit,
		constants.EntityFeedback:     createEdit,
	},
	constants.RoleReader: {
		constants.EntityOrganization: noAccess,
		constants.EntitySite:         noAccess,
		constants.EntityUser:         noAccess,
		constants.EntityAsset:        noAccess,
		constants.EntityThreat:       noAccess,
		constants.EntityScenario:     noAccess,
		constants.EntityFeedback:     createEdit,
	},
}

// Capabilities returns the permitted actions for one role on one entity.
// Unknown roles get no access.
func Capabilities(role constants.Role, entity constants.Entity) CapabilitySet {
	if byEntity, ok := capabilityTable[role]; ok {
		return byEntity[entity]
	}
	return noAccess
}

// CapabilitiesForRole returns the full per-entity table for one role, used by
// the /me/capabilities endpoint so clients render actions uniformly.
func CapabilitiesForRole(role constants.Role) map[constants.Entity]CapabilitySet {
	src, ok := capabilityTable[role]
	if !ok {
		src = map[constants.Entity]CapabilitySet{}
	}
	out := make(map[constants.Entity]CapabilitySet, len(src))
	for entity, set := range src {
		out[entity] = set
	}
	return out
}

// Can reports whether the role may perform the action on the entity.
func Can(role constants.Role, entity constants.Entity, action constants.Action) bool {
	return Capabilities(role, entity).Allows(action)
}

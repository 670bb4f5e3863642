package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resguardo/resguardo/pkg/constants"
)

func TestSuperAdminHasFullAccessEverywhere(t *testing.T) {
	for _, entity := range []constants.Entity{
		constants.EntityOrganization, constants.EntitySite, constants.EntityUser,
		constants.EntityAsset, constants.EntityThreat, constants.EntityScenario,
	} {
		set := Capabilities(constants.RoleSuperAdmin, entity)
		assert.True(t, set.Create, entity)
		assert.True(t, set.Edit, entity)
		assert.True(t, set.Delete, entity)
		assert.True(t, set.BulkDelete, entity)
	}
}

func TestAdminCannotDeleteOrganizations(t *testing.T) {
	set := Capabilities(constants.RoleAdmin, constants.EntityOrganization)
	assert.False(t, set.Create)
	assert.True(t, set.Edit)
	assert.False(t, set.Delete)
	assert.False(t, set.BulkDelete)

	assert.True(t, Can(constants.RoleAdmin, constants.EntitySite, constants.ActionBulkDelete))
}

func TestConsultantEditsCatalogDataOnly(t *testing.T) {
	assert.True(t, Can(constants.RoleConsultant, constants.EntityAsset, constants.ActionCreate))
	assert.True(t, Can(constants.RoleConsultant, constants.EntityScenario, constants.ActionEdit))
	assert.False(t, Can(constants.RoleConsultant, constants.EntityAsset, constants.ActionDelete))
	assert.False(t, Can(constants.RoleConsultant, constants.EntitySite, constants.ActionCreate))
	assert.False(t, Can(constants.RoleConsultant, constants.EntityUser, constants.ActionEdit))
}

func TestReaderHasNoMutatingActions(t *testing.T) {
	for entity, set := range CapabilitiesForRole(constants.RoleReader) {
		if entity == constants.EntityFeedback {
			assert.True(t, set.Create, "feedback stays open to readers")
			continue
		}
		assert.Equal(t, CapabilitySet{}, set, entity)
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	assert.False(t, Can(constants.Role("intruder"), constants.EntityAsset, constants.ActionCreate))
	assert.Empty(t, CapabilitiesForRole(constants.Role("intruder")))
}

package policy

import (
	"testing"

	"SwipeEstate/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestCan_ListingOwnership(t *testing.T) {
	owner := &models.User{ID: 1, Role: models.RoleLandlord, IsActive: true}
	other := &models.User{ID: 2, Role: models.RoleLandlord, IsActive: true}
	admin := &models.User{ID: 3, Role: models.RoleAdmin, IsActive: true}

	listing := &models.Listing{ID: 10, OwnerID: uintPtr(1)}
	orphan := &models.Listing{ID: 11}

	assert.True(t, Can(owner, UpdateListing, listing))
	assert.True(t, Can(owner, DeleteListing, listing))
	assert.False(t, Can(other, UpdateListing, listing))
	assert.True(t, Can(admin, UpdateListing, listing))

	assert.False(t, Can(owner, UpdateListing, orphan))
	assert.True(t, Can(admin, DeleteListing, orphan))
}

func TestCan_RoleGates(t *testing.T) {
	tenant := &models.User{ID: 1, Role: models.RoleTenant, IsActive: true}
	agent := &models.User{ID: 2, Role: models.RoleAgent, IsActive: true}
	admin := &models.User{ID: 3, Role: models.RoleAdmin, IsActive: true}

	assert.False(t, Can(tenant, ViewIncomingLeads, nil))
	assert.True(t, Can(agent, ViewIncomingLeads, nil))
	assert.True(t, Can(admin, ViewIncomingLeads, nil))

	assert.False(t, Can(agent, Administer, nil))
	assert.True(t, Can(admin, Administer, nil))
	assert.True(t, Can(tenant, CreateListing, nil))
}

func TestCan_LeadStatus(t *testing.T) {
	owner := &models.User{ID: 5, Role: models.RoleLandlord, IsActive: true}
	tenant := &models.User{ID: 6, Role: models.RoleTenant, IsActive: true}
	lead := &models.Lead{ID: 1, TenantID: 6, OwnerID: uintPtr(5)}

	assert.True(t, Can(owner, UpdateLeadStatus, lead))
	assert.False(t, Can(tenant, UpdateLeadStatus, lead))
	assert.False(t, Can(owner, UpdateLeadStatus, &models.Lead{ID: 2}))
}

func TestCan_InactiveOrMissingActor(t *testing.T) {
	admin := &models.User{ID: 3, Role: models.RoleAdmin, IsActive: false}

	assert.False(t, Can(admin, Administer, nil))
	assert.False(t, Can(nil, CreateListing, nil))
	assert.False(t, Can(&models.User{ID: 1, IsActive: true}, Action("unknown"), nil))
}

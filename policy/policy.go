// Package policy holds the single authorization predicate used by every
// mutating operation and role gate.
package policy

import (
	"SwipeEstate/models"
)

type Action string

const (
	CreateListing     Action = "listing:create"
	UpdateListing     Action = "listing:update"
	DeleteListing     Action = "listing:delete"
	ViewIncomingLeads Action = "lead:list-incoming"
	UpdateLeadStatus  Action = "lead:update-status"
	Administer        Action = "admin"
)

// Can reports whether actor may perform action on resource. resource is a
// *models.Listing for listing actions, a *models.Lead for lead actions and nil
// otherwise. Inactive or missing actors can do nothing.
func Can(actor *models.User, action Action, resource interface{}) bool {
	if actor == nil || !actor.IsActive {
		return false
	}
	isAdmin := actor.Role == models.RoleAdmin

	switch action {
	case CreateListing:
		return true
	case UpdateListing, DeleteListing:
		listing, ok := resource.(*models.Listing)
		if !ok || listing == nil {
			return false
		}
		return isAdmin || owns(actor, listing.OwnerID)
	case ViewIncomingLeads:
		switch actor.Role {
		case models.RoleLandlord, models.RoleAgent, models.RoleAdmin:
			return true
		}
		return false
	case UpdateLeadStatus:
		lead, ok := resource.(*models.Lead)
		if !ok || lead == nil {
			return false
		}
		return isAdmin || owns(actor, lead.OwnerID)
	case Administer:
		return isAdmin
	}
	return false
}

func owns(actor *models.User, ownerID *uint) bool {
	return ownerID != nil && *ownerID == actor.ID
}

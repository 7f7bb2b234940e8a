package models

import (
	"time"
)

const (
	LeadNew        = "new"
	LeadInProgress = "in_progress"
	LeadClosed     = "closed"
)

// Lead routes a tenant's interest in a listing to the listing owner.
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;uniqueIndex:uq_leads_tenant_listing" json:"tenant_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:uq_leads_tenant_listing;index" json:"listing_id"`
	OwnerID   *uint     `gorm:"index" json:"owner_id"`
	Status    string    `gorm:"size:32;not null;default:new" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadRequest struct {
	ListingID uint   `json:"listing_id" validate:"required"`
	OwnerID   *uint  `json:"owner_id"`
	Status    string `json:"status" validate:"omitempty,oneof=new in_progress closed"`
}

type LeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress closed"`
}

package models

import (
	"time"
)

const (
	DealRent = "rent"
	DealSale = "sale"

	PropertyFlat       = "flat"
	PropertyHouse      = "house"
	PropertyRoom       = "room"
	PropertyCommercial = "commercial"
)

// Listing is a property offered for rent or sale. It is never hard-deleted;
// IsActive=false hides it from every public query.
type Listing struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      *uint     `gorm:"index" json:"owner_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	City         string    `gorm:"size:128;not null;index" json:"city"`
	DealType     string    `gorm:"size:16;not null;default:rent" json:"deal_type"`
	PropertyType string    `gorm:"size:32;not null;default:flat" json:"property_type"`
	Price        float64   `gorm:"not null" json:"price"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListingRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	City         string  `json:"city" validate:"required,max=128"`
	DealType     string  `json:"deal_type" validate:"omitempty,oneof=rent sale"`
	PropertyType string  `json:"property_type" validate:"omitempty,oneof=flat house room commercial"`
	Price        float64 `json:"price" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

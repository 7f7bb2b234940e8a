package models

import (
	"time"
)

// Preference is the single filter profile a user keeps for the feed.
type Preference struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	City         *string   `gorm:"size:128" json:"city"`
	DealType     *string   `gorm:"size:16" json:"deal_type"`
	PropertyType *string   `gorm:"size:32" json:"property_type"`
	PriceMin     *float64  `json:"price_min"`
	PriceMax     *float64  `json:"price_max"`
	RoomsMin     *int      `json:"rooms_min"`
	RoomsMax     *int      `json:"rooms_max"`
	AreaMin      *int      `json:"area_min"`
	AreaMax      *int      `json:"area_max"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "tenant_preferences"
}

type PreferenceRequest struct {
	City         *string  `json:"city" validate:"omitempty,max=128"`
	DealType     *string  `json:"deal_type" validate:"omitempty,oneof=rent sale"`
	PropertyType *string  `json:"property_type" validate:"omitempty,oneof=flat house room commercial"`
	PriceMin     *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax     *float64 `json:"price_max" validate:"omitempty,gte=0"`
	RoomsMin     *int     `json:"rooms_min" validate:"omitempty,gte=0"`
	RoomsMax     *int     `json:"rooms_max" validate:"omitempty,gte=0"`
	AreaMin      *int     `json:"area_min" validate:"omitempty,gte=0"`
	AreaMax      *int     `json:"area_max" validate:"omitempty,gte=0"`
}

package models

import (
	"time"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_favorites_user_listing" json:"user_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:uq_favorites_user_listing;index" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteRequest struct {
	ListingID uint `json:"listing_id" validate:"required"`
}

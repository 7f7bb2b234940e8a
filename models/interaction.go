package models

import (
	"time"
)

const (
	ActionLike     = "like"
	ActionDislike  = "dislike"
	ActionFavorite = "favorite"
)

// FeedAction is one entry of the append-only interaction log.
type FeedAction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	Action    string    `gorm:"size:16;not null" json:"action"`
	Source    *string   `gorm:"size:16" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedActionRequest struct {
	ListingID uint    `json:"listing_id" validate:"required"`
	Action    string  `json:"action" validate:"required,oneof=like dislike favorite"`
	Source    *string `json:"source" validate:"omitempty,max=16"`
}

package models

import (
	"time"
)

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// User is an account. Email, phone and telegram id are optional but unique when present.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        *string   `gorm:"size:255;uniqueIndex" json:"email"`
	Phone        *string   `gorm:"size:32;uniqueIndex" json:"phone"`
	TelegramID   *string   `gorm:"size:64;uniqueIndex" json:"telegram_id,omitempty"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleTenant, RoleLandlord, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

type RegisterRequest struct {
	Role     string  `json:"role" validate:"required,oneof=tenant landlord agent"`
	Name     string  `json:"name" validate:"required,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Password string  `json:"password" validate:"required,min=6"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TelegramAuthRequest struct {
	TelegramID string  `json:"telegram_id" validate:"required,max=64"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
	Name       *string `json:"name" validate:"omitempty,max=255"`
	Role       *string `json:"role" validate:"omitempty,oneof=tenant landlord agent"`
}

type AdminUserUpdateRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=tenant landlord agent admin"`
	IsActive *bool   `json:"is_active"`
}

package services

import (
	"testing"
	"time"

	"SwipeEstate/config"
	"SwipeEstate/models"
	"SwipeEstate/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestTokens(t *testing.T) *utils.TokenManager {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{Role: role, Name: role + " user", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

type listingSeed struct {
	owner    *uint
	city     string
	price    float64
	deal     string
	kind     string
	inactive bool
	age      time.Duration
}

// createListing inserts a listing created `age` after baseTime so ordering
// by creation time is deterministic.
func createListing(t *testing.T, db *gorm.DB, seed listingSeed) *models.Listing {
	t.Helper()
	if seed.deal == "" {
		seed.deal = models.DealRent
	}
	if seed.kind == "" {
		seed.kind = models.PropertyFlat
	}
	listing := &models.Listing{
		OwnerID:      seed.owner,
		Title:        "Listing in " + seed.city,
		City:         seed.city,
		DealType:     seed.deal,
		PropertyType: seed.kind,
		Price:        seed.price,
		IsActive:     !seed.inactive,
		CreatedAt:    baseTime.Add(seed.age),
		UpdatedAt:    baseTime.Add(seed.age),
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func strPtr(v string) *string { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool { return &v }
func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int { return &v }
func nopLogger() *zap.Logger { return zap.NewNop() }

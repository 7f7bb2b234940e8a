package services

import (
	"context"
	"fmt"

	"SwipeEstate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewPreferenceService(db *gorm.DB, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{DB: db, Logger: logger}
}

// Get returns nil without error when the user never saved preferences.
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*models.Preference, error) {
	return findPreference(s.DB.WithContext(ctx), userID)
}

// Upsert stores the whole filter profile: fields missing from req are cleared.
func (s *PreferenceService) Upsert(ctx context.Context, userID uint, req models.PreferenceRequest) (*models.Preference, error) {
	pref := models.Preference{
		UserID:       userID,
		City:         normalize(req.City),
		DealType:     normalize(req.DealType),
		PropertyType: normalize(req.PropertyType),
		PriceMin:     req.PriceMin,
		PriceMax:     req.PriceMax,
		RoomsMin:     req.RoomsMin,
		RoomsMax:     req.RoomsMax,
		AreaMin:      req.AreaMin,
		AreaMax:      req.AreaMax,
	}

	db := s.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"city", "deal_type", "property_type",
			"price_min", "price_max",
			"rooms_min", "rooms_max",
			"area_min", "area_max",
			"updated_at",
		}),
	}).Create(&pref).Error
	if err != nil {
		return nil, fmt.Errorf("upsert preferences: %w", err)
	}

	saved, err := findPreference(db, userID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("preferences for user %d vanished after upsert", userID)
	}
	return saved, nil
}

func findPreference(db *gorm.DB, userID uint) (*models.Preference, error) {
	var prefs []models.Preference
	if err := db.Where("user_id = ?", userID).Limit(1).Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if len(prefs) == 0 {
		return nil, nil
	}
	return &prefs[0], nil
}

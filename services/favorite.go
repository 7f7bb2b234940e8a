package services

import (
	"context"
	"fmt"

	"SwipeEstate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewFavoriteService(db *gorm.DB, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{DB: db, Logger: logger}
}

// Add is idempotent: a second call returns the row stored by the first.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID uint) (*models.Favorite, error) {
	var favorite *models.Favorite
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := exists(tx.Model(&models.Listing{}).Where("id = ?", listingID))
		if err != nil {
			return err
		}
		if !found {
			return newError(ErrNotFound, "Listing not found")
		}

		favorite, err = addFavorite(tx, userID, listingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, listingID uint) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListListings returns the user's favorited listings that are still active,
// most recently favorited first.
func (s *FavoriteService) ListListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := s.DB.WithContext(ctx).
		Model(&models.Listing{}).
		Select("listings.*").
		Joins("JOIN favorites ON favorites.listing_id = listings.id").
		Where("favorites.user_id = ? AND listings.is_active = ?", userID, true).
		Order("favorites.created_at DESC").
		Order("favorites.id DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return listings, nil
}

// addFavorite relies on the (user_id, listing_id) unique index: a conflicting
// insert is skipped and the stored row is returned instead.
func addFavorite(tx *gorm.DB, userID, listingID uint) (*models.Favorite, error) {
	favorite := models.Favorite{UserID: userID, ListingID: listingID}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite)
	if res.Error != nil {
		return nil, fmt.Errorf("insert favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &favorite, nil
	}

	var existing models.Favorite
	if err := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("load existing favorite: %w", err)
	}
	return &existing, nil
}

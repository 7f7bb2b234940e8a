package services

import (
	"context"
	"fmt"

	"SwipeEstate/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultActionSource = "web"

type FeedService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewFeedService(db *gorm.DB, logger *zap.Logger) *FeedService {
	return &FeedService{DB: db, Logger: logger}
}

// Next picks the newest active listing the user has not acted on. It first
// applies the saved preferences; if nothing matches, it retries with no
// preference filters at all; no partial relaxation.
// A nil listing means the feed is exhausted.
func (s *FeedService) Next(ctx context.Context, userID uint) (*models.Listing, error) {
	db := s.DB.WithContext(ctx)

	pref, err := findPreference(db, userID)
	if err != nil {
		return nil, err
	}

	if hasFeedFilters(pref) {
		listing, err := s.firstCandidate(db, userID, pref)
		if err != nil {
			return nil, err
		}
		if listing != nil {
			return listing, nil
		}
	}

	return s.firstCandidate(db, userID, nil)
}

func (s *FeedService) firstCandidate(db *gorm.DB, userID uint, pref *models.Preference) (*models.Listing, error) {
	seen := db.Model(&models.FeedAction{}).Select("listing_id").Where("user_id = ?", userID)

	q := db.Model(&models.Listing{}).
		Where("is_active = ?", true).
		Where("id NOT IN (?)", seen)

	if pref != nil {
		if pref.City != nil {
			q = q.Where("city = ?", *pref.City)
		}
		if pref.DealType != nil {
			q = q.Where("deal_type = ?", *pref.DealType)
		}
		if pref.PropertyType != nil {
			q = q.Where("property_type = ?", *pref.PropertyType)
		}
		if pref.PriceMin != nil {
			q = q.Where("price >= ?", *pref.PriceMin)
		}
		if pref.PriceMax != nil {
			q = q.Where("price <= ?", *pref.PriceMax)
		}
	}

	var listings []models.Listing
	err := q.Order("created_at DESC").Order("id DESC").Limit(1).Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("select feed candidate: %w", err)
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}

func hasFeedFilters(pref *models.Preference) bool {
	if pref == nil {
		return false
	}
	return pref.City != nil || pref.DealType != nil || pref.PropertyType != nil ||
		pref.PriceMin != nil || pref.PriceMax != nil
}

// RecordAction appends to the interaction log and derives the favorite (for
// "favorite") or the lead (for "like") in the same transaction.
func (s *FeedService) RecordAction(ctx context.Context, userID uint, req models.FeedActionRequest) error {
	switch req.Action {
	case models.ActionLike, models.ActionDislike, models.ActionFavorite:
	default:
		return newError(ErrValidation, "action must be like, dislike or favorite")
	}
	if req.ListingID == 0 {
		return newError(ErrValidation, "listing_id is required")
	}

	source := defaultActionSource
	if src := normalize(req.Source); src != nil {
		source = *src
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := models.FeedAction{
			UserID:    userID,
			ListingID: req.ListingID,
			Action:    req.Action,
			Source:    &source,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("append feed action: %w", err)
		}

		switch req.Action {
		case models.ActionFavorite:
			if _, err := addFavorite(tx, userID, req.ListingID); err != nil {
				return err
			}
		case models.ActionLike:
			listing, err := findListing(tx, req.ListingID)
			if err != nil {
				return err
			}
			var ownerID *uint
			if listing != nil {
				ownerID = listing.OwnerID
			}
			if _, err := addLead(tx, userID, req.ListingID, ownerID, models.LeadNew); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Logger.Debug("feed action recorded",
		zap.Uint("user_id", userID),
		zap.Uint("listing_id", req.ListingID),
		zap.String("action", req.Action),
		zap.String("source", source),
	)
	return nil
}

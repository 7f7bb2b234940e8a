package services

import (
	"context"
	"fmt"
	"strconv"

	"SwipeEstate/models"
	"SwipeEstate/policy"
	"SwipeEstate/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	listingsCachePrefix = "listings:active"

	defaultPageSize = 20
	maxPageSize     = 100
)

type ListingService struct {
	DB     *gorm.DB
	Cache  *utils.QueryCache // nil disables caching
	Logger *zap.Logger
}

func NewListingService(db *gorm.DB, cache *utils.QueryCache, logger *zap.Logger) *ListingService {
	return &ListingService{DB: db, Cache: cache, Logger: logger}
}

type ListingFilter struct {
	City     string
	OwnerID  *uint
	IsActive *bool
	Page     int
	Limit    int
}

func (f ListingFilter) normalized() ListingFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return f
}

func (f ListingFilter) cacheParams() map[string]string {
	return map[string]string{
		"city":     f.City,
		"owner_id": utils.FormatOptionalUint(f.OwnerID),
		"page":     strconv.Itoa(f.Page),
		"limit":    strconv.Itoa(f.Limit),
	}
}

func (s *ListingService) Create(ctx context.Context, actor *models.User, req models.ListingRequest) (*models.Listing, error) {
	if !policy.Can(actor, policy.CreateListing, nil) {
		return nil, newError(ErrForbidden, "You are not allowed to create listings")
	}

	listing := models.Listing{OwnerID: &actor.ID}
	if err := applyListingRequest(&listing, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.invalidate(ctx)
	s.Logger.Info("listing created", zap.Uint("listing_id", listing.ID), zap.Uint("owner_id", actor.ID))
	return &listing, nil
}

// ListActive is the public list: inactive listings are never returned.
func (s *ListingService) ListActive(ctx context.Context, f ListingFilter) ([]models.Listing, error) {
	active := true
	f.IsActive = &active
	f = f.normalized()

	key := ""
	if s.Cache != nil {
		var err error
		key, err = s.Cache.Key(ctx, listingsCachePrefix, f.cacheParams())
		if err != nil {
			s.Logger.Warn("listing cache unavailable", zap.Error(err))
			key = ""
		} else {
			var cached []models.Listing
			hit, err := s.Cache.Get(ctx, key, &cached)
			if err != nil {
				s.Logger.Warn("listing cache read failed", zap.Error(err))
			} else if hit {
				return cached, nil
			}
		}
	}

	listings, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.Cache.Set(ctx, key, listings); err != nil {
			s.Logger.Warn("listing cache write failed", zap.Error(err))
		}
	}
	return listings, nil
}

// ListAll is the admin list; the active flag is only filtered when asked for.
func (s *ListingService) ListAll(ctx context.Context, f ListingFilter) ([]models.Listing, error) {
	return s.query(ctx, f.normalized())
}

func (s *ListingService) query(ctx context.Context, f ListingFilter) ([]models.Listing, error) {
	q := s.DB.WithContext(ctx).Model(&models.Listing{})
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	listings := []models.Listing{}
	err := q.Order("created_at DESC").Order("id DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

func (s *ListingService) Get(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Listing not found")
		}
		return nil, err
	}
	return &listing, nil
}

// GetActive is the public fetch; an inactive listing does not exist for it.
func (s *ListingService) GetActive(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, newError(ErrNotFound, "Listing not found")
	}
	return listing, nil
}

// Update overwrites every mutable field; it is not a partial patch.
func (s *ListingService) Update(ctx context.Context, actor *models.User, id uint, req models.ListingRequest) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Can(actor, policy.UpdateListing, listing) {
		return nil, newError(ErrForbidden, "You are not authorized to update this listing")
	}

	if err := applyListingRequest(listing, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.invalidate(ctx)
	return listing, nil
}

func (s *ListingService) SoftDelete(ctx context.Context, actor *models.User, id uint) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Can(actor, policy.DeleteListing, listing) {
		return newError(ErrForbidden, "You are not authorized to delete this listing")
	}

	if err := s.DB.WithContext(ctx).Model(listing).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate listing: %w", err)
	}

	s.invalidate(ctx)
	s.Logger.Info("listing deactivated", zap.Uint("listing_id", id), zap.Uint("actor_id", actor.ID))
	return nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, listingsCachePrefix); err != nil {
		s.Logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func applyListingRequest(listing *models.Listing, req models.ListingRequest) error {
	dealType := req.DealType
	if dealType == "" {
		dealType = models.DealRent
	}
	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = models.PropertyFlat
	}

	switch {
	case req.Title == "" || req.City == "":
		return newError(ErrValidation, "title and city are required")
	case dealType != models.DealRent && dealType != models.DealSale:
		return newError(ErrValidation, "deal_type must be rent or sale")
	case !isPropertyType(propertyType):
		return newError(ErrValidation, "property_type must be flat, house, room or commercial")
	case req.Price < 0:
		return newError(ErrValidation, "price must not be negative")
	}

	listing.Title = req.Title
	listing.City = req.City
	listing.DealType = dealType
	listing.PropertyType = propertyType
	listing.Price = req.Price
	listing.IsActive = req.IsActive == nil || *req.IsActive
	return nil
}

func isPropertyType(v string) bool {
	switch v {
	case models.PropertyFlat, models.PropertyHouse, models.PropertyRoom, models.PropertyCommercial:
		return true
	}
	return false
}

package services

import (
	"context"
	"fmt"

	"SwipeEstate/models"
	"SwipeEstate/policy"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeadService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewLeadService(db *gorm.DB, logger *zap.Logger) *LeadService {
	return &LeadService{DB: db, Logger: logger}
}

// Create records tenantID's interest in a listing. An existing lead for the
// same (tenant, listing) pair is returned unchanged. The owner defaults to the
// listing owner.
func (s *LeadService) Create(ctx context.Context, tenantID uint, req models.LeadRequest) (*models.Lead, error) {
	status := req.Status
	if status == "" {
		status = models.LeadNew
	}
	if !isLeadStatus(status) {
		return nil, newError(ErrValidation, "status must be new, in_progress or closed")
	}

	var lead *models.Lead
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := findListing(tx, req.ListingID)
		if err != nil {
			return err
		}
		if listing == nil {
			return newError(ErrNotFound, "Listing not found")
		}

		ownerID := req.OwnerID
		if ownerID == nil {
			ownerID = listing.OwnerID
		}
		lead, err = addLead(tx, tenantID, req.ListingID, ownerID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) ListForTenant(ctx context.Context, tenantID uint) ([]models.Lead, error) {
	leads := []models.Lead{}
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Order("id DESC").
		Find(&leads).Error
	return leads, err
}

// ListForOwner lists the leads routed to actor as a listing owner.
func (s *LeadService) ListForOwner(ctx context.Context, actor *models.User) ([]models.Lead, error) {
	if !policy.Can(actor, policy.ViewIncomingLeads, nil) {
		return nil, newError(ErrForbidden, "Only owners/agents/admin can view leads for them")
	}

	leads := []models.Lead{}
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", actor.ID).
		Order("created_at DESC").Order("id DESC").
		Find(&leads).Error
	return leads, err
}

func (s *LeadService) UpdateStatus(ctx context.Context, actor *models.User, leadID uint, status string) (*models.Lead, error) {
	if !isLeadStatus(status) {
		return nil, newError(ErrValidation, "status must be new, in_progress or closed")
	}

	var lead models.Lead
	if err := s.DB.WithContext(ctx).First(&lead, leadID).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Lead not found")
		}
		return nil, err
	}
	if !policy.Can(actor, policy.UpdateLeadStatus, &lead) {
		return nil, newError(ErrForbidden, "You are not authorized to update this lead")
	}

	if err := s.DB.WithContext(ctx).Model(&lead).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}
	lead.Status = status
	s.Logger.Info("lead status changed", zap.Uint("lead_id", lead.ID), zap.String("status", status))
	return &lead, nil
}

// addLead relies on the (tenant_id, listing_id) unique index the same way
// addFavorite does.
func addLead(tx *gorm.DB, tenantID, listingID uint, ownerID *uint, status string) (*models.Lead, error) {
	lead := models.Lead{
		TenantID:  tenantID,
		ListingID: listingID,
		OwnerID:   ownerID,
		Status:    status,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lead)
	if res.Error != nil {
		return nil, fmt.Errorf("insert lead: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &lead, nil
	}

	var existing models.Lead
	if err := tx.Where("tenant_id = ? AND listing_id = ?", tenantID, listingID).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("load existing lead: %w", err)
	}
	return &existing, nil
}

func findListing(tx *gorm.DB, id uint) (*models.Listing, error) {
	var listings []models.Listing
	if err := tx.Where("id = ?", id).Limit(1).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("load listing: %w", err)
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}

func isLeadStatus(v string) bool {
	switch v {
	case models.LeadNew, models.LeadInProgress, models.LeadClosed:
		return true
	}
	return false
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

// CreateFollowUpInput defines the attributes of a scheduled follow-up task.
type CreateFollowUpInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Type          string
	Priority      string
	DueDate       string
	Notes         string
	BookingID     string
}

// FollowUpService manages the follow-up task queue.
type FollowUpService struct {
	db *gorm.DB
}

// NewFollowUpService constructs a FollowUpService.
func NewFollowUpService(db *gorm.DB) (*FollowUpService, error) {
	if db == nil {
		return nil, errors.New("followup service: db is required")
	}
	return &FollowUpService{db: db}, nil
}

// List returns follow-ups, pending first, due soonest first.
func (s *FollowUpService) List(ctx context.Context, status string) ([]models.FollowUp, error) {
	ctx = ensureContext(ctx)
	query := s.db.WithContext(ctx).Order("status ASC, due_date ASC")
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var followUps []models.FollowUp
	if err := query.Find(&followUps).Error; err != nil {
		return nil, fmt.Errorf("followup service: list followups: %w", err)
	}
	return followUps, nil
}

// Create records a new follow-up task.
func (s *FollowUpService) Create(ctx context.Context, input CreateFollowUpInput) (*models.FollowUp, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, errors.New("followup service: customer name is required")
	}

	followUp := models.FollowUp{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: normaliseEmail(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Type:          defaultIfEmpty(input.Type, "general"),
		Priority:      defaultIfEmpty(input.Priority, models.FollowUpPriorityMedium),
		Status:        models.FollowUpStatusPending,
		DueDate:       strings.TrimSpace(input.DueDate),
		Notes:         input.Notes,
	}
	if bookingID := strings.TrimSpace(input.BookingID); bookingID != "" {
		followUp.BookingID = &bookingID
	}

	if err := s.db.WithContext(ctx).Create(&followUp).Error; err != nil {
		return nil, fmt.Errorf("followup service: create followup: %w", err)
	}
	return &followUp, nil
}

// MarkDone completes a follow-up task.
func (s *FollowUpService) MarkDone(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Model(&models.FollowUp{}).
		Where("id = ?", id).
		Update("status", models.FollowUpStatusDone)
	if result.Error != nil {
		return fmt.Errorf("followup service: mark done: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteForBooking removes the follow-ups attached to a booking.
func (s *FollowUpService) DeleteForBooking(ctx context.Context, bookingID string) error {
	ctx = ensureContext(ctx)
	if err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.FollowUp{}).Error; err != nil {
		return fmt.Errorf("followup service: delete followups for booking: %w", err)
	}
	return nil
}

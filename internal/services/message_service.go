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

// CreateMessageInput carries a contact form submission.
type CreateMessageInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

// MessageService stores contact form submissions from the public site.
type MessageService struct {
	db *gorm.DB
}

// NewMessageService constructs a MessageService.
func NewMessageService(db *gorm.DB) (*MessageService, error) {
	if db == nil {
		return nil, errors.New("message service: db is required")
	}
	return &MessageService{db: db}, nil
}

// List returns messages, newest first.
func (s *MessageService) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	ctx = ensureContext(ctx)
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("message service: list messages: %w", err)
	}
	return messages, nil
}

// Create stores a contact form submission.
func (s *MessageService) Create(ctx context.Context, input CreateMessageInput) (*models.ContactMessage, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, apperrors.NewBadRequest("first name is required")
	}
	email := normaliseEmail(input.Email)
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewBadRequest("message body is required")
	}

	message := models.ContactMessage{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("message service: create message: %w", err)
	}
	return &message, nil
}

// Delete removes a message from the console.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ContactMessage{})
	if result.Error != nil {
		return fmt.Errorf("message service: delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

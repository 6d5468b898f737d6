package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

// CreateNotificationInput defines attributes required to persist a log entry.
type CreateNotificationInput struct {
	Type      string
	Title     string
	Message   string
	RelatedID string
	Metadata  map[string]any
}

// ListNotificationsInput defines filters for querying the log.
type ListNotificationsInput struct {
	Type       string
	UnreadOnly bool
	Limit      int
}

// NotificationService manages the durable activity log shown in the console.
// The operator team is a single shared audience, so entries carry no user
// scoping and every mutation is broadcast to all connected sessions.
type NotificationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, hub *realtime.Hub) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db, hub: hub}, nil
}

// List returns log entries ordered by recency.
func (s *NotificationService) List(ctx context.Context, input ListNotificationsInput) ([]models.Notification, error) {
	ctx = ensureContext(ctx)

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if notificationType := strings.TrimSpace(input.Type); notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}
	return rows, nil
}

// UnreadCount returns the number of unread log entries.
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("notification service: count unread: %w", err)
	}
	return count, nil
}

// Create appends a new entry to the log and announces it.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	ctx = ensureContext(ctx)
	notificationType := strings.TrimSpace(input.Type)
	if notificationType == "" {
		return nil, errors.New("notification service: type is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("notification service: title is required")
	}

	notification := models.Notification{
		Type:      notificationType,
		Title:     title,
		Message:   strings.TrimSpace(input.Message),
		RelatedID: strings.TrimSpace(input.RelatedID),
	}
	if input.Metadata != nil {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}

	s.broadcast(realtime.EventNotificationCreated, &notification)
	return &notification, nil
}

// MarkRead sets the read flag on one entry.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	ctx = ensureContext(ctx)
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&notification).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("notification service: mark read: %w", err)
	}

	notification.IsRead = true
	notification.ReadAt = &now

	s.broadcast(realtime.EventNotificationRead, &notification)
	return &notification, nil
}

// MarkAllRead marks every unread entry as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}

	s.broadcast(realtime.EventNotificationRead, nil)
	return nil
}

// Delete removes one entry from the log.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.broadcast(realtime.EventNotificationDeleted, &models.Notification{BaseModel: models.BaseModel{ID: id}})
	return nil
}

// DeleteRead clears every entry already marked read.
func (s *NotificationService) DeleteRead(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	result := s.db.WithContext(ctx).
		Where("is_read = ?", true).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: delete read notifications: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		s.broadcast(realtime.EventNotificationDeleted, nil)
	}
	return result.RowsAffected, nil
}

func (s *NotificationService) broadcast(event string, notification *models.Notification) {
	if s.hub == nil {
		return
	}
	message := realtime.Message{
		Stream: realtime.StreamAlerts,
		Event:  event,
	}
	if notification != nil {
		message.Data = notification
	}
	s.hub.Broadcast(message)
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types recorded in the durable activity log.
const (
	NotificationTypeBooking = "booking"
	NotificationTypeQuote   = "quote"
	NotificationTypeMessage = "message"
	NotificationTypeSystem  = "system"
	NotificationTypePayment = "payment"
	NotificationTypeAlert   = "alert"
)

// Notification is a durable activity log row, distinct from the derived alert
// feed: operators mark these read or delete them independently of polling.
type Notification struct {
	BaseModel

	Type      string         `gorm:"type:varchar(32);not null;index" json:"type"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	RelatedID string         `gorm:"type:uuid" json:"related_id,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}

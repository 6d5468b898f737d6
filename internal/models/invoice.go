package models

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice payment states.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Invoice is generated from a booking at creation time. The invoice number is
// immutable once issued; financial fields are re-derived on every edit.
type Invoice struct {
	BaseModel

	BookingID     string         `gorm:"type:uuid;index" json:"booking_id"`
	InvoiceNumber string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"invoice_number"`
	LineItems     datatypes.JSON `json:"line_items"`

	Subtotal    float64 `json:"subtotal"`
	TaxRate     float64 `json:"tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`

	PaymentStatus string     `gorm:"type:varchar(16);default:'unpaid';index" json:"payment_status"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`

	// Customer snapshot taken when the invoice was issued.
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(64)" json:"customer_phone"`
}

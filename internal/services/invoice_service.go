package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

// LineItem is a single invoice row. Amount is kept as the decimal string the
// console submits; derivation treats anything unparseable as zero.
type LineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Quantity    int    `json:"quantity,omitempty"`
}

// InvoiceTotals holds the amounts derived from a line-item list.
type InvoiceTotals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// DeriveInvoiceTotals computes subtotal, tax and total from the line items.
// It never fails: malformed amounts contribute zero.
func DeriveInvoiceTotals(items []LineItem, taxRatePercent float64) InvoiceTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += parseAmount(item.Amount)
	}
	taxAmount := subtotal * taxRatePercent / 100
	return InvoiceTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// LineItemEditor applies positional edits to a line-item list the way the
// invoice editor manipulates it.
type LineItemEditor struct {
	items []LineItem
}

// NewLineItemEditor copies the supplied items into an editor.
func NewLineItemEditor(items []LineItem) *LineItemEditor {
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return &LineItemEditor{items: copied}
}

// Add appends a placeholder row.
func (e *LineItemEditor) Add() {
	e.items = append(e.items, LineItem{Description: "New Item", Amount: "0"})
}

// UpdateField sets one field of the row at the given position.
func (e *LineItemEditor) UpdateField(index int, field, value string) error {
	if index < 0 || index >= len(e.items) {
		return fmt.Errorf("invoice editor: line item %d out of range", index)
	}
	switch field {
	case "description":
		e.items[index].Description = value
	case "amount":
		e.items[index].Amount = value
	default:
		return fmt.Errorf("invoice editor: unknown field %q", field)
	}
	return nil
}

// Remove deletes the row at the given position. Removing the final row leaves
// an empty list; totals derive to zero.
func (e *LineItemEditor) Remove(index int) error {
	if index < 0 || index >= len(e.items) {
		return fmt.Errorf("invoice editor: line item %d out of range", index)
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	return nil
}

// Items returns a copy of the current rows.
func (e *LineItemEditor) Items() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Totals derives the amounts for the current rows.
func (e *LineItemEditor) Totals(taxRatePercent float64) InvoiceTotals {
	return DeriveInvoiceTotals(e.items, taxRatePercent)
}

// UpdateInvoiceInput carries the editable fields of an invoice. The invoice
// number is deliberately absent; it never changes after issue.
type UpdateInvoiceInput struct {
	LineItems     []LineItem
	TaxRate       float64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	IssueDate     *time.Time
	DueDate       *time.Time
}

// InvoiceService manages invoices issued against bookings.
type InvoiceService struct {
	db *gorm.DB
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(db *gorm.DB) (*InvoiceService, error) {
	if db == nil {
		return nil, errors.New("invoice service: db is required")
	}
	return &InvoiceService{db: db}, nil
}

// List returns invoices ordered by recency.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	ctx = ensureContext(ctx)
	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("invoice service: list invoices: %w", err)
	}
	return invoices, nil
}

// Get loads a single invoice.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	ctx = ensureContext(ctx)
	var invoice models.Invoice
	if err := s.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("invoice service: load invoice: %w", err)
	}
	return &invoice, nil
}

// CreateForBooking issues the initial invoice for a freshly created booking:
// one implicit service line covering the full amount, 10% tax rate recorded
// but not yet applied, due on the pickup date.
func (s *InvoiceService) CreateForBooking(ctx context.Context, booking *models.Booking) (*models.Invoice, error) {
	ctx = ensureContext(ctx)
	if booking == nil || booking.ID == "" {
		return nil, errors.New("invoice service: booking is required")
	}

	amount := fmt.Sprintf("%.2f", booking.Amount)
	items := []LineItem{{
		Description: fmt.Sprintf("Chauffeur Service - %s (%s to %s)",
			booking.VehicleType, booking.PickupLocation, booking.DropoffLocation),
		Amount:   amount,
		Quantity: 1,
	}}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("invoice service: marshal line items: %w", err)
	}

	invoice := models.Invoice{
		BookingID:     booking.ID,
		InvoiceNumber: nextInvoiceNumber(),
		LineItems:     datatypes.JSON(encoded),
		Subtotal:      booking.Amount,
		TaxRate:       10,
		TaxAmount:     0,
		TotalAmount:   booking.Amount,
		PaymentStatus: models.PaymentStatusUnpaid,
		IssueDate:     time.Now().UTC(),
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
	}
	if due, parseErr := time.Parse("2006-01-02", booking.PickupDate); parseErr == nil {
		invoice.DueDate = &due
	}

	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.New("invoice.number_conflict", "Invoice number already in use", 409)
		}
		return nil, fmt.Errorf("invoice service: create invoice: %w", err)
	}
	return &invoice, nil
}

// UpdateFinancials re-derives the totals from the submitted line items and
// persists the result. The stored invoice number survives every edit.
func (s *InvoiceService) UpdateFinancials(ctx context.Context, id string, input UpdateInvoiceInput) (*models.Invoice, error) {
	ctx = ensureContext(ctx)

	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	totals := DeriveInvoiceTotals(input.LineItems, input.TaxRate)
	encoded, err := json.Marshal(input.LineItems)
	if err != nil {
		return nil, fmt.Errorf("invoice service: marshal line items: %w", err)
	}

	patch := map[string]any{
		"line_items":   datatypes.JSON(encoded),
		"subtotal":     totals.Subtotal,
		"tax_rate":     input.TaxRate,
		"tax_amount":   totals.TaxAmount,
		"total_amount": totals.Total,
	}
	if name := strings.TrimSpace(input.CustomerName); name != "" {
		patch["customer_name"] = name
	}
	if email := strings.TrimSpace(input.CustomerEmail); email != "" {
		patch["customer_email"] = normaliseEmail(email)
	}
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		patch["customer_phone"] = phone
	}
	if input.IssueDate != nil {
		patch["issue_date"] = *input.IssueDate
	}
	if input.DueDate != nil {
		patch["due_date"] = *input.DueDate
	}

	result := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(patch)
	if result.Error != nil {
		return nil, fmt.Errorf("invoice service: update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrWriteRejected
	}

	return s.Get(ctx, invoice.ID)
}

// SetPaymentStatus flips the invoice between unpaid and paid.
func (s *InvoiceService) SetPaymentStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	ctx = ensureContext(ctx)
	if status != models.PaymentStatusUnpaid && status != models.PaymentStatusPaid {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown payment status %q", status))
	}

	result := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("invoice service: set payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return s.Get(ctx, id)
}

// nextInvoiceNumber derives a short human-facing number from the clock. The
// uniqueness constraint on the column catches the rare collision.
func nextInvoiceNumber() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "INV-" + millis
}

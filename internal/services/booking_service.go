package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/logger"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/mail"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/metrics"
)

// BookingMailSettings carry the addresses used for booking correspondence.
type BookingMailSettings struct {
	From         string
	ReplyTo      string
	AdminAddress string
}

const (
	defaultBookingFrom  = "Auzzie Chauffeur Bookings <booking@auzziechauffeur.com.au>"
	defaultBookingReply = "info@auzziechauffeur.com.au"
)

// CreateBookingInput defines the attributes of a new booking.
type CreateBookingInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PickupDate      string
	PickupTime      string
	PickupLocation  string
	DropoffLocation string
	VehicleType     string
	Amount          float64
	Notes           string
	DriverID        string
	VehicleID       string
	Status          models.BookingStatus
}

// SendQuoteInput carries the quote email composed in the console.
type SendQuoteInput struct {
	Subject string
	Body    string
}

// CreateBookingResult reports the outcome of the booking creation sequence.
// The booking itself is authoritative; the remaining steps run forward-only
// and report their failures in Warnings rather than rolling anything back.
type CreateBookingResult struct {
	Booking  *models.Booking `json:"booking"`
	Invoice  *models.Invoice `json:"invoice,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ListBookingsInput defines filters for querying bookings.
type ListBookingsInput struct {
	Status models.BookingStatus
	Query  string
	Limit  int
}

// BookingService owns the booking lifecycle: creation with its side effects,
// status transitions, and deletion with its dependent records.
type BookingService struct {
	db            *gorm.DB
	invoices      *InvoiceService
	customers     *CustomerService
	followUps     *FollowUpService
	notifications *NotificationService
	mailer        mail.Mailer
	mailCfg       BookingMailSettings
	log           *zap.Logger
}

// NewBookingService constructs a BookingService. The mailer may be nil when
// SMTP is disabled; email steps then degrade to warnings.
func NewBookingService(db *gorm.DB, invoices *InvoiceService, customers *CustomerService, followUps *FollowUpService, notifications *NotificationService, mailer mail.Mailer, mailCfg BookingMailSettings) (*BookingService, error) {
	if db == nil {
		return nil, errors.New("booking service: db is required")
	}
	if invoices == nil {
		return nil, errors.New("booking service: invoice service is required")
	}
	if customers == nil {
		return nil, errors.New("booking service: customer service is required")
	}
	if followUps == nil {
		return nil, errors.New("booking service: followup service is required")
	}

	mailCfg.From = defaultIfEmpty(mailCfg.From, defaultBookingFrom)
	mailCfg.ReplyTo = defaultIfEmpty(mailCfg.ReplyTo, defaultBookingReply)
	mailCfg.AdminAddress = defaultIfEmpty(mailCfg.AdminAddress, defaultBookingReply)

	return &BookingService{
		db:            db,
		invoices:      invoices,
		customers:     customers,
		followUps:     followUps,
		notifications: notifications,
		mailer:        mailer,
		mailCfg:       mailCfg,
		log:           logger.WithModule("bookings"),
	}, nil
}

// List returns bookings filtered by status and free-text search.
func (s *BookingService) List(ctx context.Context, input ListBookingsInput) ([]models.Booking, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if input.Status != "" {
		if !models.IsValidStatus(input.Status) {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown status %q", input.Status))
		}
		query = query.Where("status = ?", input.Status)
	}
	if term := strings.TrimSpace(input.Query); term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"customer_name LIKE ? OR customer_email LIKE ? OR pickup_location LIKE ? OR dropoff_location LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if input.Limit > 0 {
		query = query.Limit(input.Limit)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("booking service: list bookings: %w", err)
	}
	return bookings, nil
}

// Get loads a single booking.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	ctx = ensureContext(ctx)
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("booking service: load booking: %w", err)
	}
	return &booking, nil
}

// Create runs the booking creation sequence: customer sync, booking insert,
// invoice generation, confirmation emails, activity log entry. Only the
// booking insert is fatal; later steps append to Warnings and the sequence
// keeps moving forward.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, apperrors.NewBadRequest("customer name is required")
	}
	email := normaliseEmail(input.CustomerEmail)
	if email == "" {
		return nil, apperrors.NewBadRequest("customer email is required")
	}
	if input.PickupDate == "" {
		return nil, apperrors.NewBadRequest("pickup date is required")
	}
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown status %q", status))
	}

	// Customer sync is best-effort; the booking must not fail because the
	// CRM table is unavailable.
	if _, _, err := s.customers.UpsertByEmail(ctx, name, email, input.CustomerPhone); err != nil {
		s.log.Warn("customer sync skipped", zap.String("email", email), zap.Error(err))
	}

	booking := models.Booking{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		PickupDate:      strings.TrimSpace(input.PickupDate),
		PickupTime:      strings.TrimSpace(input.PickupTime),
		PickupLocation:  strings.TrimSpace(input.PickupLocation),
		DropoffLocation: strings.TrimSpace(input.DropoffLocation),
		VehicleType:     strings.TrimSpace(input.VehicleType),
		Status:          status,
		Amount:          input.Amount,
		Notes:           input.Notes,
	}
	if driverID := strings.TrimSpace(input.DriverID); driverID != "" {
		booking.DriverID = &driverID
	}
	if vehicleID := strings.TrimSpace(input.VehicleID); vehicleID != "" {
		booking.VehicleID = &vehicleID
	}

	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("booking service: create booking: %w", err)
	}

	result := &CreateBookingResult{Booking: &booking}

	invoice, err := s.invoices.CreateForBooking(ctx, &booking)
	if err != nil {
		s.log.Warn("invoice auto-creation failed", zap.String("booking_id", booking.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "invoice generation failed")
	} else {
		result.Invoice = invoice
		s.sendConfirmationEmails(ctx, &booking, invoice, result)
	}

	s.recordActivity(ctx, &booking)
	return result, nil
}

func (s *BookingService) sendConfirmationEmails(ctx context.Context, booking *models.Booking, invoice *models.Invoice, result *CreateBookingResult) {
	if err := s.dispatch(ctx, "booking_confirmation", mail.Message{
		From:    s.mailCfg.From,
		ReplyTo: s.mailCfg.ReplyTo,
		To:      []string{booking.CustomerEmail},
		Subject: fmt.Sprintf("Booking Confirmation - %s", invoice.InvoiceNumber),
		Body:    customerConfirmationHTML(booking, invoice.InvoiceNumber),
		HTML:    true,
	}); err != nil {
		s.log.Warn("customer confirmation email failed", zap.String("booking_id", booking.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "customer confirmation email failed")
	}

	if err := s.dispatch(ctx, "admin_alert", mail.Message{
		From:    s.mailCfg.From,
		ReplyTo: s.mailCfg.ReplyTo,
		To:      []string{s.mailCfg.AdminAddress},
		Subject: fmt.Sprintf("New Admin Booking: %s", booking.CustomerName),
		Body:    adminAlertText(booking),
	}); err != nil {
		s.log.Warn("admin alert email failed", zap.String("booking_id", booking.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "admin alert email failed")
	}
}

func (s *BookingService) dispatch(ctx context.Context, kind string, msg mail.Message) error {
	if s.mailer == nil {
		metrics.EmailDispatches.WithLabelValues(kind, "skipped").Inc()
		return errors.New("mailer not configured")
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailDispatches.WithLabelValues(kind, "error").Inc()
		return err
	}
	metrics.EmailDispatches.WithLabelValues(kind, "ok").Inc()
	return nil
}

func (s *BookingService) recordActivity(ctx context.Context, booking *models.Booking) {
	if s.notifications == nil {
		return
	}

	title := "New Booking"
	notificationType := models.NotificationTypeBooking
	if booking.Status == models.StatusQuoteRequest {
		title = "New Quote Request"
		notificationType = models.NotificationTypeQuote
	}

	_, err := s.notifications.Create(ctx, CreateNotificationInput{
		Type:      notificationType,
		Title:     title,
		Message:   fmt.Sprintf("%s submitted a request.", booking.CustomerName),
		RelatedID: booking.ID,
	})
	if err != nil {
		s.log.Warn("activity log entry failed", zap.String("booking_id", booking.ID), zap.Error(err))
	}
}

// SetStatus applies a lifecycle transition. Unknown statuses, transitions out
// of terminal states and edges missing from the lifecycle are rejected; a
// same-status request is an idempotent no-op. The update is guarded on the
// observed status so a concurrent transition surfaces as a rejection instead
// of silently winning.
func (s *BookingService) SetStatus(ctx context.Context, id string, target models.BookingStatus) (*models.Booking, error) {
	ctx = ensureContext(ctx)

	if !models.IsValidStatus(target) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown status %q", target))
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == target {
		metrics.BookingTransitions.WithLabelValues(string(target), "noop").Inc()
		return booking, nil
	}
	if booking.Status.IsTerminal() {
		metrics.BookingTransitions.WithLabelValues(string(target), "rejected").Inc()
		return nil, apperrors.ErrTerminalStatus
	}
	if !booking.Status.CanTransitionTo(target) {
		metrics.BookingTransitions.WithLabelValues(string(target), "rejected").Inc()
		return nil, apperrors.ErrInvalidTransition
	}

	result := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Update("status", target)
	if result.Error != nil {
		return nil, fmt.Errorf("booking service: update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		metrics.BookingTransitions.WithLabelValues(string(target), "rejected").Inc()
		return nil, apperrors.ErrWriteRejected
	}

	metrics.BookingTransitions.WithLabelValues(string(target), "applied").Inc()
	booking.Status = target
	return booking, nil
}

// ConvertQuote promotes a quote request into the pending queue.
func (s *BookingService) ConvertQuote(ctx context.Context, id string) (*models.Booking, error) {
	ctx = ensureContext(ctx)

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusQuoteRequest && booking.Status != models.StatusQuoteSent {
		return nil, apperrors.ErrInvalidTransition
	}
	return s.SetStatus(ctx, id, models.StatusPending)
}

// SendQuote emails the composed quote to the customer, moves the booking to
// Quote Sent and schedules a follow-up two days out. The email is the
// gating step; nothing is recorded when it fails.
func (s *BookingService) SendQuote(ctx context.Context, id string, input SendQuoteInput) (*models.Booking, error) {
	ctx = ensureContext(ctx)

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusQuoteRequest && booking.Status != models.StatusQuoteSent {
		return nil, apperrors.ErrInvalidTransition
	}

	subject := defaultIfEmpty(input.Subject, fmt.Sprintf("Your Chauffeur Quote - %s", booking.VehicleType))
	body := defaultIfEmpty(input.Body, quoteEmailHTML(booking))

	if err := s.dispatch(ctx, "quote", mail.Message{
		From:    s.mailCfg.From,
		ReplyTo: s.mailCfg.ReplyTo,
		To:      []string{booking.CustomerEmail},
		Subject: subject,
		Body:    body,
		HTML:    true,
	}); err != nil {
		return nil, apperrors.Wrap(err, "Failed to send quote email")
	}

	booking, err = s.SetStatus(ctx, id, models.StatusQuoteSent)
	if err != nil {
		return nil, err
	}

	dueDate := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	if _, err := s.followUps.Create(ctx, CreateFollowUpInput{
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		Type:          "quote",
		Priority:      models.FollowUpPriorityHigh,
		DueDate:       dueDate,
		Notes:         fmt.Sprintf("Follow up on sent quote for %s trip. Amount: $%.2f", booking.VehicleType, booking.Amount),
		BookingID:     booking.ID,
	}); err != nil {
		s.log.Warn("follow-up scheduling failed", zap.String("booking_id", booking.ID), zap.Error(err))
	}

	return booking, nil
}

// Delete removes a booking together with its invoices and follow-ups. The
// dependent rows go first so foreign keys never block the booking row.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return fmt.Errorf("booking service: delete invoices: %w", err)
		}
		if err := tx.Where("booking_id = ?", id).Delete(&models.FollowUp{}).Error; err != nil {
			return fmt.Errorf("booking service: delete followups: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Booking{})
		if result.Error != nil {
			return fmt.Errorf("booking service: delete booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrWriteRejected
		}
		return nil
	})
}

func customerConfirmationHTML(booking *models.Booking, invoiceNumber string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">`)
	b.WriteString(`<h2 style="color: #1e3a8a;">Booking Approved</h2>`)
	fmt.Fprintf(&b, `<p>Dear %s,</p>`, booking.CustomerName)
	b.WriteString(`<p>Thank you for choosing Auzzie Chauffeur. Your booking has been successfully created and confirmed.</p>`)
	b.WriteString(`<div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">`)
	fmt.Fprintf(&b, `<p><strong>Pickup:</strong> %s at %s</p>`, booking.PickupDate, booking.PickupTime)
	fmt.Fprintf(&b, `<p><strong>From:</strong> %s</p>`, booking.PickupLocation)
	fmt.Fprintf(&b, `<p><strong>To:</strong> %s</p>`, booking.DropoffLocation)
	fmt.Fprintf(&b, `<p><strong>Vehicle:</strong> %s</p>`, booking.VehicleType)
	fmt.Fprintf(&b, `<p><strong>Total Amount:</strong> $%.2f</p>`, booking.Amount)
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<p>Your invoice %s has been generated.</p>`, invoiceNumber)
	b.WriteString(`<p>We will assign a driver shortly and you will receive another update with their details.</p>`)
	b.WriteString(`<p>Best regards,<br>Auzzie Chauffeur Team</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func adminAlertText(booking *models.Booking) string {
	return fmt.Sprintf(
		"New booking created manually in admin dashboard.\n\nCustomer: %s\nPhone: %s\nDate: %s %s\nRoute: %s -> %s\nAmount: $%.2f",
		booking.CustomerName, booking.CustomerPhone,
		booking.PickupDate, booking.PickupTime,
		booking.PickupLocation, booking.DropoffLocation,
		booking.Amount)
}

func quoteEmailHTML(booking *models.Booking) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">`)
	b.WriteString(`<h2 style="color: #1e3a8a;">Your Chauffeur Quote</h2>`)
	fmt.Fprintf(&b, `<p>Dear %s,</p>`, booking.CustomerName)
	b.WriteString(`<p>Thank you for your enquiry. Please find your quote below.</p>`)
	b.WriteString(`<div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">`)
	fmt.Fprintf(&b, `<p><strong>Pickup:</strong> %s at %s</p>`, booking.PickupDate, booking.PickupTime)
	fmt.Fprintf(&b, `<p><strong>From:</strong> %s</p>`, booking.PickupLocation)
	fmt.Fprintf(&b, `<p><strong>To:</strong> %s</p>`, booking.DropoffLocation)
	fmt.Fprintf(&b, `<p><strong>Vehicle:</strong> %s</p>`, booking.VehicleType)
	fmt.Fprintf(&b, `<p><strong>Quoted Amount:</strong> $%.2f</p>`, booking.Amount)
	b.WriteString(`</div>`)
	b.WriteString(`<p>Reply to this email to confirm your booking.</p>`)
	b.WriteString(`<p>Best regards,<br>Auzzie Chauffeur Team</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

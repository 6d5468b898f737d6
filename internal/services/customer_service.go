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

// CustomerService keeps the CRM records in sync with bookings.
type CustomerService struct {
	db *gorm.DB
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(db *gorm.DB) (*CustomerService, error) {
	if db == nil {
		return nil, errors.New("customer service: db is required")
	}
	return &CustomerService{db: db}, nil
}

// List returns customers ordered by recency.
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	ctx = ensureContext(ctx)
	var customers []models.Customer
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("customer service: list customers: %w", err)
	}
	return customers, nil
}

// Get loads a single customer.
func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	ctx = ensureContext(ctx)
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("customer service: load customer: %w", err)
	}
	return &customer, nil
}

// UpsertByEmail ensures a customer record exists for the address. An existing
// record is left untouched; bookings are the source of truth for contact
// details only on first sight.
func (s *CustomerService) UpsertByEmail(ctx context.Context, fullName, email, phone string) (*models.Customer, bool, error) {
	ctx = ensureContext(ctx)
	email = normaliseEmail(email)
	if email == "" {
		return nil, false, errors.New("customer service: email is required")
	}

	var existing models.Customer
	err := s.db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("customer service: lookup customer: %w", err)
	}

	customer := models.Customer{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Phone:    strings.TrimSpace(phone),
		Status:   "Active",
		Notes:    "Created via New Booking",
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Lost a race with a concurrent insert; the record exists now.
			if lookupErr := s.db.WithContext(ctx).First(&existing, "email = ?", email).Error; lookupErr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("customer service: create customer: %w", err)
	}
	return &customer, true, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
)

// FleetService lists drivers and vehicles for booking assignment.
type FleetService struct {
	db *gorm.DB
}

// NewFleetService constructs a FleetService.
func NewFleetService(db *gorm.DB) (*FleetService, error) {
	if db == nil {
		return nil, errors.New("fleet service: db is required")
	}
	return &FleetService{db: db}, nil
}

// ListDrivers returns drivers, optionally filtered by status.
func (s *FleetService) ListDrivers(ctx context.Context, status string) ([]models.Driver, error) {
	ctx = ensureContext(ctx)
	query := s.db.WithContext(ctx).Order("name ASC")
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("fleet service: list drivers: %w", err)
	}
	return drivers, nil
}

// ListVehicles returns fleet vehicles, optionally filtered by status.
func (s *FleetService) ListVehicles(ctx context.Context, status string) ([]models.Vehicle, error) {
	ctx = ensureContext(ctx)
	query := s.db.WithContext(ctx).Order("make ASC, model ASC")
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("fleet service: list vehicles: %w", err)
	}
	return vehicles, nil
}

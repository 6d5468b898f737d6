package database

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminUser{},
		&models.Customer{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Invoice{},
		&models.FollowUp{},
		&models.ContactMessage{},
		&models.Notification{},
	)
}

// SeedData populates reference rows required on first boot.
func SeedData(db *gorm.DB) error {
	vehicles := []models.Vehicle{
		{BaseModel: models.BaseModel{ID: "fleet-sedan"}, Make: "Mercedes-Benz", Model: "E-Class", Type: "Luxury Sedan", Status: "Available"},
		{BaseModel: models.BaseModel{ID: "fleet-suv"}, Make: "Mercedes-Benz", Model: "GLE", Type: "Luxury SUV", Status: "Available"},
		{BaseModel: models.BaseModel{ID: "fleet-van"}, Make: "Mercedes-Benz", Model: "V-Class", Type: "People Mover", Status: "Available"},
	}

	for _, vehicle := range vehicles {
		if err := db.Where(models.Vehicle{BaseModel: models.BaseModel{ID: vehicle.ID}}).
			Attrs(vehicle).
			FirstOrCreate(&models.Vehicle{}).Error; err != nil {
			return err
		}
	}

	drivers := []models.Driver{
		{BaseModel: models.BaseModel{ID: "driver-principal"}, Name: "Principal Chauffeur", Email: "driver@auzziechauffeur.com.au", Status: "Available"},
		{BaseModel: models.BaseModel{ID: "driver-relief"}, Name: "Relief Chauffeur", Status: "Available"},
	}

	for _, driver := range drivers {
		if err := db.Where(models.Driver{BaseModel: models.BaseModel{ID: driver.ID}}).
			Attrs(driver).
			FirstOrCreate(&models.Driver{}).Error; err != nil {
			return err
		}
	}

	return nil
}

// EnsureAdminUser creates the operator account when it does not already exist.
// The password is hashed with bcrypt; an existing account is left untouched.
func EnsureAdminUser(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("admin email is required")
	}
	if password == "" {
		return errors.New("admin password is required")
	}

	var existing models.AdminUser
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&models.AdminUser{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
	}).Error
}

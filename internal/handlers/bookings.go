package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// BookingHandler exposes HTTP endpoints for the booking lifecycle.
type BookingHandler struct {
	service *services.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List returns bookings filtered by status and search term.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), services.ListBookingsInput{
		Status: models.BookingStatus(strings.TrimSpace(c.Query("status"))),
		Query:  c.Query("q"),
		Limit:  parseIntQuery(c, "limit", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// Get returns one booking.
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// Create runs the booking creation sequence. Partial failures after the
// booking insert are reported in the warnings array alongside a 201.
func (h *BookingHandler) Create(c *gin.Context) {
	var payload struct {
		CustomerName    string  `json:"customer_name" validate:"required"`
		CustomerEmail   string  `json:"customer_email" validate:"required,email"`
		CustomerPhone   string  `json:"customer_phone"`
		PickupDate      string  `json:"pickup_date" validate:"required"`
		PickupTime      string  `json:"pickup_time"`
		PickupLocation  string  `json:"pickup_location"`
		DropoffLocation string  `json:"dropoff_location"`
		VehicleType     string  `json:"vehicle_type"`
		Amount          float64 `json:"amount"`
		Notes           string  `json:"notes"`
		DriverID        string  `json:"driver_id"`
		VehicleID       string  `json:"vehicle_id"`
		Status          string  `json:"status"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), services.CreateBookingInput{
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerPhone:   payload.CustomerPhone,
		PickupDate:      payload.PickupDate,
		PickupTime:      payload.PickupTime,
		PickupLocation:  payload.PickupLocation,
		DropoffLocation: payload.DropoffLocation,
		VehicleType:     payload.VehicleType,
		Amount:          payload.Amount,
		Notes:           payload.Notes,
		DriverID:        payload.DriverID,
		VehicleID:       payload.VehicleID,
		Status:          models.BookingStatus(payload.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(result.Warnings) > 0 {
		response.SuccessWithWarnings(c, http.StatusCreated, result, result.Warnings)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// SetStatus applies a lifecycle transition.
func (h *BookingHandler) SetStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status" validate:"required"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	booking, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), models.BookingStatus(payload.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// ConvertQuote promotes a quote request into the pending queue.
func (h *BookingHandler) ConvertQuote(c *gin.Context) {
	booking, err := h.service.ConvertQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// SendQuote emails the quote and schedules the follow-up.
func (h *BookingHandler) SendQuote(c *gin.Context) {
	var payload struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	booking, err := h.service.SendQuote(c.Request.Context(), c.Param("id"), services.SendQuoteInput{
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// Delete removes a booking and its dependent records.
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// FollowUpHandler exposes the follow-up task queue.
type FollowUpHandler struct {
	service *services.FollowUpService
}

// NewFollowUpHandler constructs a FollowUpHandler.
func NewFollowUpHandler(service *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{service: service}
}

// List returns follow-ups, optionally filtered by status.
func (h *FollowUpHandler) List(c *gin.Context) {
	followUps, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, followUps)
}

// Create schedules a follow-up task from the console.
func (h *FollowUpHandler) Create(c *gin.Context) {
	var payload struct {
		CustomerName  string `json:"customer_name" validate:"required"`
		CustomerEmail string `json:"customer_email"`
		CustomerPhone string `json:"customer_phone"`
		Type          string `json:"type"`
		Priority      string `json:"priority"`
		DueDate       string `json:"due_date"`
		Notes         string `json:"notes"`
		BookingID     string `json:"booking_id"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	followUp, err := h.service.Create(c.Request.Context(), services.CreateFollowUpInput{
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
		Type:          payload.Type,
		Priority:      payload.Priority,
		DueDate:       payload.DueDate,
		Notes:         payload.Notes,
		BookingID:     payload.BookingID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, followUp)
}

// MarkDone completes a follow-up task.
func (h *FollowUpHandler) MarkDone(c *gin.Context) {
	if err := h.service.MarkDone(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"done": true})
}

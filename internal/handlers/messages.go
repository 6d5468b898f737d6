package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// MessageHandler exposes the public contact form intake and the console list.
type MessageHandler struct {
	service       *services.MessageService
	notifications *services.NotificationService
}

// NewMessageHandler constructs a MessageHandler. The notification service is
// optional; when present an activity log entry accompanies each submission.
func NewMessageHandler(service *services.MessageService, notifications *services.NotificationService) *MessageHandler {
	return &MessageHandler{service: service, notifications: notifications}
}

// Create accepts a contact form submission from the public site.
func (h *MessageHandler) Create(c *gin.Context) {
	var payload struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name"`
		Email     string `json:"email" validate:"required,email"`
		Phone     string `json:"phone"`
		Message   string `json:"message" validate:"required"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	message, err := h.service.Create(c.Request.Context(), services.CreateMessageInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Message:   payload.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.notifications != nil {
		// Best effort; the submission itself already succeeded.
		name := strings.TrimSpace(message.FirstName + " " + message.LastName)
		_, _ = h.notifications.Create(c.Request.Context(), services.CreateNotificationInput{
			Type:      models.NotificationTypeMessage,
			Title:     "New Contact Message",
			Message:   name + " sent a message.",
			RelatedID: message.ID,
		})
	}

	response.Success(c, http.StatusCreated, message)
}

// List returns contact messages for the console.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context(), parseIntQuery(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, messages)
}

// Delete removes a message.
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/alerts"
	iauth "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/auth"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// AlertHandler exposes the alert feed and its realtime stream.
type AlertHandler struct {
	aggregator *alerts.Aggregator
	hub        *realtime.Hub
	jwt        *iauth.JWTService
}

// NewAlertHandler constructs an AlertHandler.
func NewAlertHandler(aggregator *alerts.Aggregator, hub *realtime.Hub, jwt *iauth.JWTService) *AlertHandler {
	return &AlertHandler{aggregator: aggregator, hub: hub, jwt: jwt}
}

// Snapshot returns the most recent alert feed.
func (h *AlertHandler) Snapshot(c *gin.Context) {
	response.Success(c, http.StatusOK, h.aggregator.Snapshot())
}

// Refresh runs a poll immediately and returns the fresh feed. Degraded
// sources surface as warnings next to the partial snapshot.
func (h *AlertHandler) Refresh(c *gin.Context) {
	snapshot, err := h.aggregator.Poll(c.Request.Context())
	if err != nil {
		response.SuccessWithWarnings(c, http.StatusOK, snapshot, []string{"one or more sources unavailable"})
		return
	}

	response.Success(c, http.StatusOK, snapshot)
}

// Stream upgrades the connection to a WebSocket feeding console events.
// Browsers cannot set headers on WebSocket dials, so the token also travels
// as a query parameter.
func (h *AlertHandler) Stream(c *gin.Context) {
	if h.hub == nil || h.jwt == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authz := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token = strings.TrimSpace(authz[7:])
		}
	}
	if token == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if _, err := h.jwt.ValidateAccessToken(token); err != nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	h.hub.Serve(c.Writer, c.Request)
}

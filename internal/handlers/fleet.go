package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// FleetHandler lists drivers and vehicles for booking assignment.
type FleetHandler struct {
	service *services.FleetService
}

// NewFleetHandler constructs a FleetHandler.
func NewFleetHandler(service *services.FleetService) *FleetHandler {
	return &FleetHandler{service: service}
}

// Drivers returns drivers, optionally filtered by status.
func (h *FleetHandler) Drivers(c *gin.Context) {
	drivers, err := h.service.ListDrivers(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, drivers)
}

// Vehicles returns fleet vehicles, optionally filtered by status.
func (h *FleetHandler) Vehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicles)
}

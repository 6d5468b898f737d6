package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// CustomerHandler exposes the CRM listing.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List returns all customers with a total count for the console table.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, customers, &response.Meta{Total: len(customers)})
}

// Get returns one customer.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

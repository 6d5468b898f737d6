package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	appErrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// InvoiceHandler exposes HTTP endpoints for invoices.
type InvoiceHandler struct {
	service *services.InvoiceService
}

// NewInvoiceHandler constructs an InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List returns all invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoices)
}

// Get returns one invoice.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

// Update re-derives the financial fields from the submitted line items.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var payload struct {
		LineItems []struct {
			Description string `json:"description"`
			Amount      string `json:"amount"`
			Quantity    int    `json:"quantity"`
		} `json:"line_items" validate:"required"`
		TaxRate       float64 `json:"tax_rate"`
		CustomerName  string  `json:"customer_name"`
		CustomerEmail string  `json:"customer_email"`
		CustomerPhone string  `json:"customer_phone"`
		IssueDate     string  `json:"issue_date"`
		DueDate       string  `json:"due_date"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	items := make([]services.LineItem, 0, len(payload.LineItems))
	for _, item := range payload.LineItems {
		items = append(items, services.LineItem{
			Description: item.Description,
			Amount:      item.Amount,
			Quantity:    item.Quantity,
		})
	}

	input := services.UpdateInvoiceInput{
		LineItems:     items,
		TaxRate:       payload.TaxRate,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
	}
	if payload.IssueDate != "" {
		issued, err := time.Parse("2006-01-02", payload.IssueDate)
		if err != nil {
			response.Error(c, appErrors.NewBadRequest("issue_date must be YYYY-MM-DD"))
			return
		}
		input.IssueDate = &issued
	}
	if payload.DueDate != "" {
		due, err := time.Parse("2006-01-02", payload.DueDate)
		if err != nil {
			response.Error(c, appErrors.NewBadRequest("due_date must be YYYY-MM-DD"))
			return
		}
		input.DueDate = &due
	}

	invoice, err := h.service.UpdateFinancials(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

// SetPaymentStatus flips an invoice between unpaid and paid.
func (h *InvoiceHandler) SetPaymentStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status" validate:"required"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	invoice, err := h.service.SetPaymentStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// BillingHandler handles invoice requests.
type BillingHandler struct {
	Service *services.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{Service: service}
}

// ListInvoices handles fetching all invoices with payer context.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.Service.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Invoices fetched successfully", invoices)
}

// GetInvoiceByID handles fetching a single invoice.
func (h *BillingHandler) GetInvoiceByID(c *gin.Context) {
	invoice, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Invoice fetched successfully", invoice)
}

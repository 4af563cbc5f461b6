package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceRenderer produces the printable invoice document for an order.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, orderID uuid.UUID) (string, error)
}

// InvoiceHandler serves printable order invoices.
type InvoiceHandler struct {
	BaseHandler
	invoices InvoiceRenderer
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices InvoiceRenderer) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// GetInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	html, err := h.invoices.RenderInvoice(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:id/invoice", h.GetInvoice)
}

package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storesync/backend/internal/interfaces/http/dto"
)

// StockSetter applies an absolute stock quantity to a local product.
type StockSetter interface {
	SetStock(ctx context.Context, sku string, quantity int) error
}

// InventoryHandler receives inbound stock updates from the remote ERP.
type InventoryHandler struct {
	BaseHandler
	stock StockSetter
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stock StockSetter) *InventoryHandler {
	return &InventoryHandler{stock: stock}
}

// stockWebhookRequest uses pointers so an absent field is distinguishable
// from a zero value.
type stockWebhookRequest struct {
	SKU      *string `json:"product_sku"`
	Quantity *int    `json:"stock_quantity"`
}

// UpdateStock handles POST /inventory
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req stockWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	if req.SKU == nil || strings.TrimSpace(*req.SKU) == "" {
		h.Error(c, dto.ErrCodeValidationRequired, "Field 'product_sku' is required")
		return
	}
	if req.Quantity == nil {
		h.Error(c, dto.ErrCodeValidationRequired, "Field 'stock_quantity' is required")
		return
	}

	if err := h.stock.SetStock(c.Request.Context(), strings.TrimSpace(*req.SKU), *req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRoutes registers inventory webhook routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inventory", h.UpdateStock)
}

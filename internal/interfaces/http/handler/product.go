package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductPusher pushes a local product's price and description to the
// remote ERP.
type ProductPusher interface {
	PushProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductHandler handles outbound product sync endpoints.
type ProductHandler struct {
	BaseHandler
	products ProductPusher
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductPusher) *ProductHandler {
	return &ProductHandler{products: products}
}

// Push handles POST /products/:id/push
func (h *ProductHandler) Push(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.products.PushProduct(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"pushed": true})
}

// RegisterRoutes registers product sync routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/push", h.Push)
}

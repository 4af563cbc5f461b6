package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderapp "github.com/storesync/backend/internal/application/order"
	"github.com/storesync/backend/internal/domain/order"
	syncdomain "github.com/storesync/backend/internal/domain/sync"
)

// OrderPlacer records storefront orders.
type OrderPlacer interface {
	Place(ctx context.Context, input orderapp.PlaceOrderInput) (*order.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*order.Order, error)
}

// OrderSyncer pushes a placed order to the remote ERP. It never fails
// outward; the attempt carries the outcome.
type OrderSyncer interface {
	SyncOrder(ctx context.Context, orderID uuid.UUID) *syncdomain.Attempt
}

// OrderHandler handles order placement and ERP resync endpoints.
type OrderHandler struct {
	BaseHandler
	orders OrderPlacer
	syncer OrderSyncer
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderPlacer, syncer OrderSyncer) *OrderHandler {
	return &OrderHandler{orders: orders, syncer: syncer}
}

// PlaceOrderRequest represents the order placement payload
type PlaceOrderRequest struct {
	Number           string             `json:"number" binding:"required"`
	CustomerID       string             `json:"customer_id"`
	BillingName      string             `json:"billing_name"`
	BillingEmail     string             `json:"billing_email"`
	BillingPhone     string             `json:"billing_phone"`
	BillingStreet    string             `json:"billing_street"`
	BillingStreet2   string             `json:"billing_street2"`
	BillingCity      string             `json:"billing_city"`
	BillingPostcode  string             `json:"billing_postcode"`
	ShippingCity     string             `json:"shipping_city"`
	ShippingState    string             `json:"shipping_state"`
	ShippingPostcode string             `json:"shipping_postcode"`
	ShippingCountry  string             `json:"shipping_country"`
	PaymentMethodKey string             `json:"payment_method_key" binding:"required"`
	Lines            []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest represents one order line in the placement payload
type OrderLineRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SyncResultResponse reports the outcome of one ERP sync attempt
type SyncResultResponse struct {
	Outcome   string `json:"outcome"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	RemoteReference string              `json:"remote_reference,omitempty"`
	Total           string              `json:"total"`
	Sync            *SyncResultResponse `json:"sync,omitempty"`
}

func toOrderResponse(o *order.Order, attempt *syncdomain.Attempt) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		Number:          o.Number,
		Status:          o.Status.String(),
		RemoteReference: o.RemoteReference,
		Total:           o.Total().StringFixed(2),
	}
	if attempt != nil {
		resp.Sync = toSyncResult(attempt)
	}
	return resp
}

func toSyncResult(attempt *syncdomain.Attempt) *SyncResultResponse {
	return &SyncResultResponse{
		Outcome:   string(attempt.Outcome),
		Reference: attempt.Reference,
		Reason:    attempt.Reason,
	}
}

// Place handles POST /orders
func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID := uuid.Nil
	if req.CustomerID != "" {
		parsed, err := uuid.Parse(req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer_id")
			return
		}
		customerID = parsed
	}

	input := orderapp.PlaceOrderInput{
		Number:           req.Number,
		CustomerID:       customerID,
		BillingName:      req.BillingName,
		BillingEmail:     req.BillingEmail,
		BillingPhone:     req.BillingPhone,
		BillingStreet:    req.BillingStreet,
		BillingStreet2:   req.BillingStreet2,
		BillingCity:      req.BillingCity,
		BillingPostcode:  req.BillingPostcode,
		ShippingCity:     req.ShippingCity,
		ShippingState:    req.ShippingState,
		ShippingPostcode: req.ShippingPostcode,
		ShippingCountry:  req.ShippingCountry,
		PaymentMethodKey: req.PaymentMethodKey,
		Lines:            make([]orderapp.LineInput, len(req.Lines)),
	}
	for i, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		input.Lines[i] = orderapp.LineInput{
			ProductID: productID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	o, err := h.orders.Place(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	attempt := h.syncer.SyncOrder(c.Request.Context(), o.ID)

	// Reload so the response reflects the notes and reference the sync
	// attempt recorded.
	if updated, err := h.orders.Get(c.Request.Context(), o.ID); err == nil {
		o = updated
	}

	h.Created(c, toOrderResponse(o, attempt))
}

// Resync handles POST /orders/:id/sync
func (h *OrderHandler) Resync(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	if _, err := h.orders.Get(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	attempt := h.syncer.SyncOrder(c.Request.Context(), orderID)
	h.Success(c, toSyncResult(attempt))
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	o, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(o, nil))
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.Place)
	rg.GET("/orders/:id", h.Get)
	rg.POST("/orders/:id/sync", h.Resync)
}

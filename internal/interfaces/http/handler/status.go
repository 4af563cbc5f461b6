package handler

import (
	"context"
	"crypto/subtle"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storesync/backend/internal/domain/order"
)

// DeliveryStatusAdvancer advances an order one step along the delivery
// chain.
type DeliveryStatusAdvancer interface {
	AdvanceDeliveryStatus(ctx context.Context, orderID uuid.UUID) (*order.Order, bool, error)
}

// StatusPageHandler serves the QR status-update link. The page is opened
// by delivery staff scanning the invoice QR code, so responses are plain
// HTML rather than the JSON envelope.
type StatusPageHandler struct {
	orders DeliveryStatusAdvancer
	secret string
	tmpl   *template.Template
}

// NewStatusPageHandler creates a new StatusPageHandler
func NewStatusPageHandler(orders DeliveryStatusAdvancer, secret string) *StatusPageHandler {
	return &StatusPageHandler{
		orders: orders,
		secret: secret,
		tmpl:   template.Must(template.New("status").Parse(statusPageTemplate)),
	}
}

type statusPage struct {
	Title   string
	Heading string
	Message string
}

const statusPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px auto; max-width: 480px; color: #222; }
  h1 { font-size: 20px; }
</style>
</head>
<body>
  <h1>{{.Heading}}</h1>
  <p>{{.Message}}</p>
</body>
</html>
`

// UpdateStatus handles GET /update-status
func (h *StatusPageHandler) UpdateStatus(c *gin.Context) {
	secret := c.Query("secret_key")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		h.render(c, http.StatusForbidden, statusPage{
			Title:   "Access denied",
			Heading: "Access denied",
			Message: "This status link is not valid.",
		})
		return
	}

	orderID, err := uuid.Parse(c.Query("order_id"))
	if err != nil {
		h.renderNotFound(c)
		return
	}

	o, advanced, err := h.orders.AdvanceDeliveryStatus(c.Request.Context(), orderID)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	if !advanced {
		h.render(c, http.StatusOK, statusPage{
			Title:   "Order " + o.Number,
			Heading: fmt.Sprintf("Order %s is already %s", o.Number, o.Status.DisplayName()),
			Message: "No further status updates are possible for this order.",
		})
		return
	}

	h.render(c, http.StatusOK, statusPage{
		Title:   "Order " + o.Number,
		Heading: fmt.Sprintf("Order %s updated", o.Number),
		Message: fmt.Sprintf("The order is now %s.", o.Status.DisplayName()),
	})
}

func (h *StatusPageHandler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, statusPage{
		Title:   "Order not found",
		Heading: "Order not found",
		Message: "No order matches this status link.",
	})
}

func (h *StatusPageHandler) render(c *gin.Context, status int, page statusPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(c.Writer, page); err != nil {
		_ = c.Error(err)
	}
}

// RegisterRoutes registers the status-update route
func (h *StatusPageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/update-status", h.UpdateStatus)
}

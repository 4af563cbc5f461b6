package printing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/order"
)

// InvoiceLine is one rendered invoice row.
type InvoiceLine struct {
	Name      string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// InvoiceData carries everything the renderer needs for one invoice.
type InvoiceData struct {
	Number      string
	Date        time.Time
	BillingName string
	Status      string
	Lines       []InvoiceLine
	Total       decimal.Decimal
	// StatusURL is encoded into the invoice QR code; scanning it advances
	// the order's delivery status.
	StatusURL string
}

// Renderer produces a printable invoice document.
type Renderer interface {
	RenderInvoice(ctx context.Context, data InvoiceData) (string, error)
}

// InvoiceService builds printable invoices for orders.
type InvoiceService struct {
	orders   order.Repository
	renderer Renderer
	baseURL  string
	secret   string
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. baseURL is the externally
// reachable base of this service and secret the shared status-link secret.
func NewInvoiceService(orders order.Repository, renderer Renderer, baseURL, secret string, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		orders:   orders,
		renderer: renderer,
		baseURL:  baseURL,
		secret:   secret,
		logger:   logger,
	}
}

// StatusLink builds the status-update link for an order.
func (s *InvoiceService) StatusLink(orderID uuid.UUID) string {
	query := url.Values{}
	query.Set("order_id", orderID.String())
	query.Set("secret_key", s.secret)
	return strings.TrimSuffix(s.baseURL, "/") + "/update-status?" + query.Encode()
}

// RenderInvoice renders the printable invoice for the given order.
func (s *InvoiceService) RenderInvoice(ctx context.Context, orderID uuid.UUID) (string, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("load order: %w", err)
	}

	lines := make([]InvoiceLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = InvoiceLine{
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total(),
		}
	}

	html, err := s.renderer.RenderInvoice(ctx, InvoiceData{
		Number:      o.Number,
		Date:        o.CreatedAt,
		BillingName: o.BillingName,
		Status:      o.Status.DisplayName(),
		Lines:       lines,
		Total:       o.Total(),
		StatusURL:   s.StatusLink(o.ID),
	})
	if err != nil {
		s.logger.Error("invoice rendering failed",
			zap.String("order_number", o.Number), zap.Error(err))
		return "", err
	}
	return html, nil
}

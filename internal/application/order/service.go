package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/order"
)

// LineInput is one order line as submitted at checkout.
type LineInput struct {
	ProductID uuid.UUID
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PlaceOrderInput carries everything needed to record a placed order.
type PlaceOrderInput struct {
	Number           string
	CustomerID       uuid.UUID
	BillingName      string
	BillingEmail     string
	BillingPhone     string
	BillingStreet    string
	BillingStreet2   string
	BillingCity      string
	BillingPostcode  string
	ShippingCity     string
	ShippingState    string
	ShippingPostcode string
	ShippingCountry  string
	PaymentMethodKey string
	Lines            []LineInput
}

// Service manages the storefront order lifecycle.
type Service struct {
	orders order.Repository
	logger *zap.Logger
}

// NewService creates a new order Service
func NewService(orders order.Repository, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		logger: logger,
	}
}

// Place records a freshly paid order in the processing state.
func (s *Service) Place(ctx context.Context, input PlaceOrderInput) (*order.Order, error) {
	items := make([]order.LineItem, len(input.Lines))
	for i, line := range input.Lines {
		items[i] = order.LineItem{
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	o, err := order.NewOrder(input.Number, input.CustomerID, items)
	if err != nil {
		return nil, err
	}
	o.BillingName = input.BillingName
	o.BillingEmail = input.BillingEmail
	o.BillingPhone = input.BillingPhone
	o.BillingStreet = input.BillingStreet
	o.BillingStreet2 = input.BillingStreet2
	o.BillingCity = input.BillingCity
	o.BillingPostcode = input.BillingPostcode
	o.ShippingCity = input.ShippingCity
	o.ShippingState = input.ShippingState
	o.ShippingPostcode = input.ShippingPostcode
	o.ShippingCountry = input.ShippingCountry
	o.PaymentMethodKey = input.PaymentMethodKey

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()), zap.String("number", o.Number))
	return o, nil
}

// Get loads an order by id.
func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// AdvanceDeliveryStatus moves the order one step along the delivery chain
// and persists the change. Returns the resulting status and whether the
// order actually advanced; orders outside the chain are left untouched.
func (s *Service) AdvanceDeliveryStatus(ctx context.Context, orderID uuid.UUID) (*order.Order, bool, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	next, advanced := o.AdvanceDeliveryStatus()
	if !advanced {
		return o, false, nil
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, false, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order delivery status advanced",
		zap.String("order_id", o.ID.String()), zap.String("status", next.String()))
	return o, true, nil
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	orderapp "github.com/storesync/backend/internal/application/order"
	"github.com/storesync/backend/internal/domain/order"
	syncdomain "github.com/storesync/backend/internal/domain/sync"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockStockSetter is a mock implementation of StockSetter
type MockStockSetter struct {
	mock.Mock
}

func (m *MockStockSetter) SetStock(ctx context.Context, sku string, quantity int) error {
	args := m.Called(ctx, sku, quantity)
	return args.Error(0)
}

// MockDeliveryStatusAdvancer is a mock implementation of DeliveryStatusAdvancer
type MockDeliveryStatusAdvancer struct {
	mock.Mock
}

func (m *MockDeliveryStatusAdvancer) AdvanceDeliveryStatus(ctx context.Context, orderID uuid.UUID) (*order.Order, bool, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*order.Order), args.Bool(1), args.Error(2)
}

// MockOrderPlacer is a mock implementation of OrderPlacer
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) Place(ctx context.Context, input orderapp.PlaceOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderPlacer) Get(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// MockOrderSyncer is a mock implementation of OrderSyncer
type MockOrderSyncer struct {
	mock.Mock
}

func (m *MockOrderSyncer) SyncOrder(ctx context.Context, orderID uuid.UUID) *syncdomain.Attempt {
	args := m.Called(ctx, orderID)
	return args.Get(0).(*syncdomain.Attempt)
}

// MockInvoiceRenderer is a mock implementation of InvoiceRenderer
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) RenderInvoice(ctx context.Context, orderID uuid.UUID) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

// MockProductPusher is a mock implementation of ProductPusher
type MockProductPusher struct {
	mock.Mock
}

func (m *MockProductPusher) PushProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

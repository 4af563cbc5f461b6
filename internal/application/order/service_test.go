package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/order"
	"github.com/storesync/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		Number:           "1001",
		CustomerID:       uuid.Nil,
		BillingName:      "Ali Hassan",
		BillingPhone:     "0551234567",
		ShippingCity:     "DAM",
		ShippingCountry:  "SA",
		PaymentMethodKey: "cod",
		Lines: []LineInput{
			{ProductID: uuid.New(), SKU: "SKU1", Name: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

func TestPlace_CreatesProcessingOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(orders, zap.NewNop())
	o, err := svc.Place(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "1001", o.Number)
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, "DAM", o.ShippingCity)
	assert.Equal(t, "cod", o.PaymentMethodKey)
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	orders.AssertExpectations(t)
}

func TestPlace_RejectsEmptyOrder(t *testing.T) {
	orders := new(MockOrderRepository)

	svc := NewService(orders, zap.NewNop())
	input := validInput()
	input.Lines = nil
	_, err := svc.Place(context.Background(), input)

	require.Error(t, err)
	orders.AssertNotCalled(t, "Save")
}

func TestPlace_SaveFailurePropagates(t *testing.T) {
	orders := new(MockOrderRepository)
	saveErr := errors.New("db down")
	orders.On("Save", mock.Anything, mock.Anything).Return(saveErr)

	svc := NewService(orders, zap.NewNop())
	_, err := svc.Place(context.Background(), validInput())

	assert.ErrorIs(t, err, saveErr)
}

func TestAdvanceDeliveryStatus_WalksTheChain(t *testing.T) {
	o, err := order.NewOrder("1001", uuid.Nil, []order.LineItem{
		{ProductID: uuid.New(), SKU: "SKU1", Quantity: 1},
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orders.On("Save", mock.Anything, o).Return(nil)

	svc := NewService(orders, zap.NewNop())

	expected := []order.Status{
		order.StatusPrepared,
		order.StatusOutForDelivery,
		order.StatusCompleted,
	}
	for _, want := range expected {
		updated, advanced, err := svc.AdvanceDeliveryStatus(context.Background(), o.ID)
		require.NoError(t, err)
		assert.True(t, advanced)
		assert.Equal(t, want, updated.Status)
	}

	// Completed orders do not advance further.
	updated, advanced, err := svc.AdvanceDeliveryStatus(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, order.StatusCompleted, updated.Status)
}

func TestAdvanceDeliveryStatus_UnknownOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	svc := NewService(orders, zap.NewNop())
	_, _, err := svc.AdvanceDeliveryStatus(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

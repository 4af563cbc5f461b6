package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storesync/backend/internal/domain/order"
	"github.com/storesync/backend/internal/domain/partner"
	"github.com/storesync/backend/internal/domain/sync"
)

// MockGateway is a mock implementation of sync.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FindPartnersByPhone(ctx context.Context, phone string) ([]sync.RemotePartner, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.RemotePartner), args.Error(1)
}

func (m *MockGateway) FindPartnersByEmail(ctx context.Context, email string) ([]sync.RemotePartner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.RemotePartner), args.Error(1)
}

func (m *MockGateway) CreatePartner(ctx context.Context, draft sync.PartnerDraft) (int, error) {
	args := m.Called(ctx, draft)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) FindProductsBySKU(ctx context.Context, sku string) ([]sync.RemoteProduct, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.RemoteProduct), args.Error(1)
}

func (m *MockGateway) UpdateProduct(ctx context.Context, sku string, update sync.ProductUpdate) error {
	args := m.Called(ctx, sku, update)
	return args.Error(0)
}

func (m *MockGateway) CreateSession(ctx context.Context, configID int) (int, error) {
	args := m.Called(ctx, configID)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) CreateOrder(ctx context.Context, draft sync.OrderDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) ListCompanies(ctx context.Context) ([]sync.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.Company), args.Error(1)
}

func (m *MockGateway) ListPOSConfigs(ctx context.Context) ([]sync.POSConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.POSConfig), args.Error(1)
}

func (m *MockGateway) ListPaymentMethods(ctx context.Context, companyID int) ([]sync.PaymentMethod, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.PaymentMethod), args.Error(1)
}

// MockZoneMatcher is a mock implementation of sync.ZoneMatcher
type MockZoneMatcher struct {
	mock.Mock
}

func (m *MockZoneMatcher) MatchZone(ctx context.Context, dest sync.Destination) (int, error) {
	args := m.Called(ctx, dest)
	return args.Int(0), args.Error(1)
}

// MockConfigProvider is a mock implementation of sync.ConfigProvider
type MockConfigProvider struct {
	mock.Mock
}

func (m *MockConfigProvider) RoutingConfig(ctx context.Context) (*sync.RoutingConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.RoutingConfig), args.Error(1)
}

func (m *MockConfigProvider) BranchConfig(ctx context.Context, branchID int) (*sync.BranchConfig, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.BranchConfig), args.Error(1)
}

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

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

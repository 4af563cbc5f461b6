package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/partner"
	"github.com/storesync/backend/internal/domain/sync"
)

func newResolver(gateway *MockGateway, customers *MockCustomerRepository) *PartnerResolver {
	return NewPartnerResolver(gateway, customers, zap.NewNop())
}

func TestResolve_MatchesByNormalizedPhone(t *testing.T) {
	gateway := new(MockGateway)
	// Formatted differently on both sides; both reduce to the same digits.
	gateway.On("FindPartnersByPhone", mock.Anything, "+966 55-123 4567").Return([]sync.RemotePartner{
		{ID: 501, Mobile: "0 (55) 123-4567", Phone: ""},
	}, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{Phone: "+966 55-123 4567"})

	require.NoError(t, err)
	assert.Equal(t, 501, partnerID)
	gateway.AssertNotCalled(t, "FindPartnersByEmail")
	gateway.AssertNotCalled(t, "CreatePartner")
}

func TestResolve_PhoneNearMissIsNotAccepted(t *testing.T) {
	gateway := new(MockGateway)
	// Trailing digit differs: the substring search over-matched.
	gateway.On("FindPartnersByPhone", mock.Anything, "0551234567").Return([]sync.RemotePartner{
		{ID: 501, Mobile: "05512345678"},
	}, nil)
	gateway.On("FindPartnersByEmail", mock.Anything, "a@b.com").Return([]sync.RemotePartner{}, nil)
	gateway.On("CreatePartner", mock.Anything, mock.Anything).Return(601, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{Phone: "0551234567", Email: "a@b.com"})

	require.NoError(t, err)
	assert.Equal(t, 601, partnerID)
}

func TestResolve_PhoneMatchesEitherField(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, "0551234567").Return([]sync.RemotePartner{
		{ID: 1, Mobile: "000"},
		{ID: 2, Mobile: "999", Phone: "055-123-4567"},
	}, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{Phone: "0551234567"})

	require.NoError(t, err)
	assert.Equal(t, 2, partnerID)
}

func TestResolve_EmailFallbackIsCaseInsensitive(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, "0551234567").Return([]sync.RemotePartner{}, nil)
	gateway.On("FindPartnersByEmail", mock.Anything, "Ali@Example.com").Return([]sync.RemotePartner{
		{ID: 88, Email: "  ali@example.COM "},
	}, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{Phone: "0551234567", Email: "Ali@Example.com"})

	require.NoError(t, err)
	assert.Equal(t, 88, partnerID)
	gateway.AssertNotCalled(t, "CreatePartner")
}

func TestResolve_CreatesPartnerWhenNothingMatches(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, "0551234567").Return([]sync.RemotePartner{}, nil)
	gateway.On("FindPartnersByEmail", mock.Anything, "ali@example.com").Return([]sync.RemotePartner{}, nil)
	gateway.On("CreatePartner", mock.Anything, sync.PartnerDraft{
		Name:    "Ali Hassan",
		Email:   "ali@example.com",
		Mobile:  "0551234567",
		Phone:   "0551234567",
		Street:  "King Fahd Rd",
		Street2: "Apt 2",
		City:    "DAM",
		Zip:     "32241",
	}).Return(742, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{
		Name:    "Ali Hassan",
		Email:   "ali@example.com",
		Phone:   "0551234567",
		Street:  "King Fahd Rd",
		Street2: "Apt 2",
		City:    "DAM",
		Zip:     "32241",
	})

	require.NoError(t, err)
	assert.Equal(t, 742, partnerID)
	gateway.AssertExpectations(t)
}

func TestResolve_CreateFailurePropagates(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, mock.Anything).Return([]sync.RemotePartner{}, nil)
	gateway.On("FindPartnersByEmail", mock.Anything, mock.Anything).Return([]sync.RemotePartner{}, nil)
	gateway.On("CreatePartner", mock.Anything, mock.Anything).Return(0, sync.ErrCreateResponseUnparseable)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	_, err := resolver.Resolve(context.Background(), Contact{Phone: "0551234567", Email: "a@b.com"})

	assert.ErrorIs(t, err, sync.ErrPartnerUnresolvable)
	assert.ErrorIs(t, err, sync.ErrCreateResponseUnparseable)
}

func TestResolve_SearchErrorFallsThroughToNextStep(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	gateway.On("FindPartnersByEmail", mock.Anything, "a@b.com").Return([]sync.RemotePartner{
		{ID: 13, Email: "a@b.com"},
	}, nil)

	resolver := newResolver(gateway, new(MockCustomerRepository))
	partnerID, err := resolver.Resolve(context.Background(), Contact{Phone: "0551234567", Email: "a@b.com"})

	require.NoError(t, err)
	assert.Equal(t, 13, partnerID)
}

func TestResolve_CachesPartnerIDOnCustomer(t *testing.T) {
	customer, err := partner.NewCustomer("Ali", "Hassan", "ali@example.com", "0551234567")
	require.NoError(t, err)

	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, "0551234567").Return([]sync.RemotePartner{
		{ID: 501, Mobile: "0551234567"},
	}, nil)

	customers := new(MockCustomerRepository)
	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customers.On("Save", mock.Anything, mock.MatchedBy(func(c *partner.Customer) bool {
		return c.RemotePartnerID == 501
	})).Return(nil)

	resolver := newResolver(gateway, customers)
	partnerID, err := resolver.Resolve(context.Background(), Contact{
		CustomerID: customer.ID,
		Phone:      "0551234567",
	})

	require.NoError(t, err)
	assert.Equal(t, 501, partnerID)
	customers.AssertExpectations(t)
}

func TestResolve_CacheWriteFailureDoesNotFailResolution(t *testing.T) {
	customer, err := partner.NewCustomer("Ali", "Hassan", "ali@example.com", "0551234567")
	require.NoError(t, err)

	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, mock.Anything).Return([]sync.RemotePartner{
		{ID: 501, Mobile: "0551234567"},
	}, nil)

	customers := new(MockCustomerRepository)
	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customers.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	resolver := newResolver(gateway, customers)
	partnerID, err := resolver.Resolve(context.Background(), Contact{
		CustomerID: customer.ID,
		Phone:      "0551234567",
	})

	require.NoError(t, err)
	assert.Equal(t, 501, partnerID)
}

func TestResolve_GuestSkipsCache(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("FindPartnersByPhone", mock.Anything, mock.Anything).Return([]sync.RemotePartner{
		{ID: 501, Mobile: "0551234567"},
	}, nil)

	customers := new(MockCustomerRepository)

	resolver := newResolver(gateway, customers)
	_, err := resolver.Resolve(context.Background(), Contact{CustomerID: uuid.Nil, Phone: "0551234567"})

	require.NoError(t, err)
	customers.AssertNotCalled(t, "FindByID")
	customers.AssertNotCalled(t, "Save")
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "9665512345", digitsOnly("+966 55-123 45"))
	assert.Equal(t, "", digitsOnly("no digits"))
	assert.Equal(t, "0551234567", digitsOnly("0551234567"))
}

package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/partner"
	"github.com/storesync/backend/internal/domain/sync"
)

// Contact carries the customer details used to resolve a remote partner.
// CustomerID may be uuid.Nil for guest orders; it is only used for the
// opportunistic local cache write.
type Contact struct {
	CustomerID uuid.UUID
	Name       string
	Email      string
	Phone      string
	Street     string
	Street2    string
	City       string
	Zip        string
}

// PartnerResolver finds or creates the remote partner matching a contact.
// The remote system is the source of truth: resolution always queries it,
// never the local cache.
type PartnerResolver struct {
	gateway   sync.Gateway
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// NewPartnerResolver creates a new PartnerResolver
func NewPartnerResolver(gateway sync.Gateway, customers partner.CustomerRepository, logger *zap.Logger) *PartnerResolver {
	return &PartnerResolver{
		gateway:   gateway,
		customers: customers,
		logger:    logger,
	}
}

// Resolve looks up the partner by phone, then email, and creates one when
// neither matches. On success the id is cached on the local customer record,
// best-effort.
func (r *PartnerResolver) Resolve(ctx context.Context, contact Contact) (int, error) {
	r.logger.Info("resolving remote partner",
		zap.String("email", contact.Email),
		zap.String("phone", contact.Phone),
	)

	if partnerID, ok := r.matchByPhone(ctx, contact.Phone); ok {
		r.cachePartnerID(ctx, contact.CustomerID, partnerID)
		return partnerID, nil
	}

	if partnerID, ok := r.matchByEmail(ctx, contact.Email); ok {
		r.cachePartnerID(ctx, contact.CustomerID, partnerID)
		return partnerID, nil
	}

	r.logger.Info("partner not found remotely, creating a new one")
	partnerID, err := r.gateway.CreatePartner(ctx, sync.PartnerDraft{
		Name:    contact.Name,
		Email:   contact.Email,
		Mobile:  contact.Phone,
		Phone:   contact.Phone,
		Street:  contact.Street,
		Street2: contact.Street2,
		City:    contact.City,
		Zip:     contact.Zip,
	})
	if err != nil {
		r.logger.Error("failed to create remote partner", zap.Error(err))
		return 0, fmt.Errorf("%w: %w", sync.ErrPartnerUnresolvable, err)
	}

	r.logger.Info("created new remote partner", zap.Int("partner_id", partnerID))
	r.cachePartnerID(ctx, contact.CustomerID, partnerID)
	return partnerID, nil
}

// matchByPhone accepts a candidate whose mobile or phone field reduces to
// the same digit string as the query phone. The remote search is a
// substring match over formatted numbers, so both sides are normalized to
// digits before comparison. First match wins; remote ordering is not
// guaranteed under duplicate records.
func (r *PartnerResolver) matchByPhone(ctx context.Context, phone string) (int, bool) {
	if phone == "" {
		return 0, false
	}
	wanted := digitsOnly(phone)
	if wanted == "" {
		return 0, false
	}

	candidates, err := r.gateway.FindPartnersByPhone(ctx, phone)
	if err != nil {
		r.logger.Warn("phone search failed", zap.Error(err))
		return 0, false
	}
	for _, candidate := range candidates {
		if digitsOnly(candidate.Mobile) == wanted || digitsOnly(candidate.Phone) == wanted {
			r.logger.Info("found matching partner by phone", zap.Int("partner_id", candidate.ID))
			return candidate.ID, true
		}
	}
	return 0, false
}

// matchByEmail accepts the first candidate whose email equals the query
// case-insensitively after trimming whitespace.
func (r *PartnerResolver) matchByEmail(ctx context.Context, email string) (int, bool) {
	if email == "" {
		return 0, false
	}
	wanted := strings.ToLower(strings.TrimSpace(email))

	candidates, err := r.gateway.FindPartnersByEmail(ctx, email)
	if err != nil {
		r.logger.Warn("email search failed", zap.Error(err))
		return 0, false
	}
	for _, candidate := range candidates {
		if strings.ToLower(strings.TrimSpace(candidate.Email)) == wanted {
			r.logger.Info("found matching partner by email", zap.Int("partner_id", candidate.ID))
			return candidate.ID, true
		}
	}
	return 0, false
}

// cachePartnerID writes the resolved id back to the local customer record.
// Best-effort: a failed write never fails the resolution.
func (r *PartnerResolver) cachePartnerID(ctx context.Context, customerID uuid.UUID, partnerID int) {
	if customerID == uuid.Nil {
		return
	}
	customer, err := r.customers.FindByID(ctx, customerID)
	if err != nil {
		r.logger.Warn("could not load customer for partner cache",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return
	}
	customer.CacheRemotePartner(partnerID)
	if err := r.customers.Save(ctx, customer); err != nil {
		r.logger.Warn("could not cache partner id on customer", zap.Error(err))
	}
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

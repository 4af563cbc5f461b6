package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/order"
	"github.com/storesync/backend/internal/domain/partner"
	"github.com/storesync/backend/internal/domain/shared"
	"github.com/storesync/backend/internal/domain/sync"
)

// defaultPricelistID is the remote pricelist applied to every submitted
// order.
const defaultPricelistID = 1

// Orchestrator runs the order sync saga. Each step is strictly sequential
// and its failure is terminal for the attempt: the order is annotated with
// a human-readable reason and later steps never run. There are no retries
// at this layer; recovery is a fresh trigger.
//
// The orchestrator never raises: the triggering event (an order-placed
// hook) must not fail the checkout because sync failed. Outcomes surface
// only as order notes and audit log entries.
type Orchestrator struct {
	orders    order.Repository
	customers partner.CustomerRepository
	configs   sync.ConfigProvider
	gateway   sync.Gateway
	router    *BranchRouter
	resolver  *PartnerResolver
	mapper    *LineMapper
	logger    *zap.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(
	orders order.Repository,
	customers partner.CustomerRepository,
	configs sync.ConfigProvider,
	gateway sync.Gateway,
	router *BranchRouter,
	resolver *PartnerResolver,
	mapper *LineMapper,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		customers: customers,
		configs:   configs,
		gateway:   gateway,
		router:    router,
		resolver:  resolver,
		mapper:    mapper,
		logger:    logger,
	}
}

// SyncOrder runs one sync attempt for the given order and reports the
// outcome. The order is submitted to the remote system at most once per
// successful attempt; a failed attempt performs zero remote order-creation
// calls. Sessions or partners created before a later failure are left
// behind remotely; they are harmless and not rolled back.
func (s *Orchestrator) SyncOrder(ctx context.Context, orderID uuid.UUID) *sync.Attempt {
	attempt := &sync.Attempt{OrderID: orderID, Outcome: sync.OutcomeFailed}
	logger := s.logger.With(zap.String("order_id", orderID.String()))
	logger.Info("starting order sync")

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("could not load order", zap.Error(err))
		attempt.Reason = "order not found"
		return attempt
	}

	// RouteBranch
	routing, err := s.configs.RoutingConfig(ctx)
	if err != nil {
		logger.Error("could not load routing configuration", zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed: routing configuration could not be loaded.")
		return attempt
	}
	dest := sync.Destination{
		Country:  o.ShippingCountry,
		State:    o.ShippingState,
		Postcode: o.ShippingPostcode,
		City:     o.ShippingCity,
	}
	branchID, err := s.router.Route(ctx, routing, dest)
	if err != nil {
		logger.Error("could not determine branch",
			zap.String("shipping_city", o.ShippingCity), zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed: could not determine a branch for the customer's city or shipping zone.")
		return attempt
	}
	attempt.BranchID = branchID
	o.RemoteBranchID = branchID

	branchName := s.lookupBranchName(ctx, branchID)
	logger.Info("determined branch for order",
		zap.Int("branch_id", branchID), zap.String("branch_name", branchName))
	o.AddNote(fmt.Sprintf("ERP branch '%s' assigned to order.", branchName))

	// ResolvePaymentAndSession
	sessionTemplateID, paymentMethodID, err := s.resolvePaymentAndSession(ctx, branchID, o.PaymentMethodKey)
	switch {
	case errors.Is(err, sync.ErrNoSessionConfigured):
		logger.Error("no session template configured for branch", zap.Int("branch_id", branchID))
		s.fail(ctx, o, attempt, fmt.Sprintf("ERP sync failed: no session is configured for the '%s' branch.", branchName))
		return attempt
	case errors.Is(err, sync.ErrNoPaymentMapping):
		logger.Error("payment method is not mapped for branch",
			zap.String("payment_key", o.PaymentMethodKey), zap.Int("branch_id", branchID))
		s.fail(ctx, o, attempt, fmt.Sprintf("ERP sync failed: payment method is not mapped for the '%s' branch.", branchName))
		return attempt
	case err != nil:
		logger.Error("could not load branch configuration",
			zap.Int("branch_id", branchID), zap.Error(err))
		s.fail(ctx, o, attempt, fmt.Sprintf("ERP sync failed: configuration for the '%s' branch could not be loaded.", branchName))
		return attempt
	}

	// ResolvePartner
	partnerID, err := s.resolver.Resolve(ctx, s.contactForOrder(ctx, o))
	if err != nil {
		if !errors.Is(err, sync.ErrPartnerUnresolvable) {
			err = fmt.Errorf("%w: %w", sync.ErrPartnerUnresolvable, err)
		}
		logger.Warn("could not resolve a remote partner", zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed: could not find or create a partner for the customer.")
		return attempt
	}
	attempt.PartnerID = partnerID

	// MapLines
	lines, err := s.mapper.MapLines(ctx, o.Items)
	if err != nil {
		logger.Error("could not map order lines", zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed: "+err.Error())
		return attempt
	}
	attempt.Lines = lines

	// CreateRemoteSession
	sessionID, err := s.gateway.CreateSession(ctx, sessionTemplateID)
	if err != nil {
		logger.Error("failed to create POS session",
			zap.Int("session_template_id", sessionTemplateID), zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed: could not create a POS session.")
		return attempt
	}
	attempt.SessionID = sessionID
	logger.Info("created POS session", zap.Int("pos_session_id", sessionID))

	// SubmitOrder
	reference, err := s.gateway.CreateOrder(ctx, sync.OrderDraft{
		SessionID:       sessionID,
		PricelistID:     defaultPricelistID,
		PaymentMethodID: paymentMethodID,
		PartnerID:       partnerID,
		Lines:           lines,
	})
	if err != nil {
		logger.Error("failed to submit order", zap.Error(err))
		s.fail(ctx, o, attempt, "ERP sync failed. Check the sync logs for more details.")
		return attempt
	}

	attempt.Outcome = sync.OutcomeSuccess
	attempt.Reference = reference
	o.RemoteReference = reference
	o.AddNote("Order successfully synced to ERP. Reference: " + reference)
	s.save(ctx, o)
	logger.Info("order successfully synced", zap.String("reference", reference))
	return attempt
}

// resolvePaymentAndSession loads the branch configuration and picks the
// session template and payment method for the order. A branch without
// settings counts as having no session configured; any other load failure
// is reported as is.
func (s *Orchestrator) resolvePaymentAndSession(ctx context.Context, branchID int, paymentKey string) (int, int, error) {
	branchCfg, err := s.configs.BranchConfig(ctx, branchID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, 0, sync.ErrNoSessionConfigured
	}
	if err != nil {
		return 0, 0, fmt.Errorf("load branch configuration: %w", err)
	}
	if branchCfg.SessionTemplateID == 0 {
		return 0, 0, sync.ErrNoSessionConfigured
	}
	paymentMethodID, ok := branchCfg.PaymentMethodID(paymentKey)
	if !ok {
		return 0, 0, sync.ErrNoPaymentMapping
	}
	return branchCfg.SessionTemplateID, paymentMethodID, nil
}

// fail records a terminal failure: the reason goes on the attempt and onto
// the order as a note, and the order is persisted.
func (s *Orchestrator) fail(ctx context.Context, o *order.Order, attempt *sync.Attempt, reason string) {
	attempt.Reason = reason
	o.AddNote(reason)
	s.save(ctx, o)
}

// save persists the order. A persistence failure is logged and swallowed;
// it must not surface to the triggering event.
func (s *Orchestrator) save(ctx context.Context, o *order.Order) {
	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Error("could not persist order after sync attempt",
			zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

// lookupBranchName fetches the branch display name for order notes.
// Best-effort only.
func (s *Orchestrator) lookupBranchName(ctx context.Context, branchID int) string {
	companies, err := s.gateway.ListCompanies(ctx)
	if err != nil {
		return "Unknown"
	}
	for _, company := range companies {
		if company.ID == branchID {
			return company.Name
		}
	}
	return "Unknown"
}

// contactForOrder builds the resolver contact. Registered customers
// contribute their account details; guest orders fall back to the order's
// billing fields.
func (s *Orchestrator) contactForOrder(ctx context.Context, o *order.Order) Contact {
	if !o.IsGuest() {
		if customer, err := s.customers.FindByID(ctx, o.CustomerID); err == nil {
			return Contact{
				CustomerID: customer.ID,
				Name:       customer.FullName(),
				Email:      customer.Email,
				Phone:      customer.Phone,
				Street:     customer.Street,
				Street2:    customer.Street2,
				City:       customer.City,
				Zip:        customer.Postcode,
			}
		}
		s.logger.Warn("could not load customer for order, using billing details",
			zap.String("order_id", o.ID.String()))
	}
	return Contact{
		Name:    o.BillingName,
		Email:   o.BillingEmail,
		Phone:   o.BillingPhone,
		Street:  o.BillingStreet,
		Street2: o.BillingStreet2,
		City:    o.BillingCity,
		Zip:     o.BillingPostcode,
	}
}

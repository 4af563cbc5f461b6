package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/sync"
)

// BranchRouter determines which ERP branch owns an order based on its
// shipping destination.
type BranchRouter struct {
	zones  sync.ZoneMatcher
	logger *zap.Logger
}

// NewBranchRouter creates a new BranchRouter
func NewBranchRouter(zones sync.ZoneMatcher, logger *zap.Logger) *BranchRouter {
	return &BranchRouter{
		zones:  zones,
		logger: logger,
	}
}

// Route resolves the owning branch for a destination. The city table is
// authoritative: a city hit returns immediately and the zone fallback is
// never consulted. When the city misses and a zone table is configured, the
// destination is matched to a shipping zone and looked up there. No mapping
// by either path is a terminal, non-retryable failure.
func (r *BranchRouter) Route(ctx context.Context, cfg *sync.RoutingConfig, dest sync.Destination) (int, error) {
	if branchID, ok := cfg.BranchForCity(dest.City); ok {
		r.logger.Debug("routed order by city",
			zap.String("shipping_city", dest.City),
			zap.Int("branch_id", branchID),
		)
		return branchID, nil
	}

	if cfg.HasZoneFallback() {
		r.logger.Info("no match in city routing, falling back to zone routing",
			zap.String("shipping_city", dest.City))

		zoneID, err := r.zones.MatchZone(ctx, dest)
		if err != nil {
			r.logger.Warn("zone matching failed", zap.Error(err))
			return 0, sync.ErrNoBranchMapping
		}
		if branchID, ok := cfg.BranchForZone(zoneID); ok {
			r.logger.Debug("routed order by zone",
				zap.Int("zone_id", zoneID),
				zap.Int("branch_id", branchID),
			)
			return branchID, nil
		}
	}

	return 0, sync.ErrNoBranchMapping
}

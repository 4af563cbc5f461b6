package sync

import (
	"context"
	"strings"
)

// ---------------------------------------------------------------------------
// Routing Configuration
// ---------------------------------------------------------------------------

// CityBranch is a single city-code to branch mapping row as persisted.
type CityBranch struct {
	CityCode string
	BranchID int
}

// RoutingConfig holds the branch routing tables. It is loaded once per sync
// attempt and never mutated during order processing.
type RoutingConfig struct {
	cityBranches map[string]int
	zoneBranches map[int]int
}

// NewRoutingConfig builds a RoutingConfig from persisted rows. City codes are
// normalized to uppercase; on duplicate codes the last row wins.
func NewRoutingConfig(cities []CityBranch, zones map[int]int) *RoutingConfig {
	cfg := &RoutingConfig{
		cityBranches: make(map[string]int, len(cities)),
		zoneBranches: make(map[int]int, len(zones)),
	}
	for _, row := range cities {
		code := strings.ToUpper(strings.TrimSpace(row.CityCode))
		if code == "" {
			continue
		}
		cfg.cityBranches[code] = row.BranchID
	}
	for zoneID, branchID := range zones {
		cfg.zoneBranches[zoneID] = branchID
	}
	return cfg
}

// BranchForCity returns the branch mapped to the given city, matching
// case-insensitively.
func (c *RoutingConfig) BranchForCity(city string) (int, bool) {
	id, ok := c.cityBranches[strings.ToUpper(strings.TrimSpace(city))]
	return id, ok
}

// BranchForZone returns the branch mapped to the given shipping zone.
func (c *RoutingConfig) BranchForZone(zoneID int) (int, bool) {
	id, ok := c.zoneBranches[zoneID]
	return id, ok
}

// HasZoneFallback reports whether a zone routing table is configured at all.
func (c *RoutingConfig) HasZoneFallback() bool {
	return len(c.zoneBranches) > 0
}

// BranchConfig holds per-branch settings required to submit an order.
type BranchConfig struct {
	BranchID int
	// SessionTemplateID is the POS config id used to open a session.
	SessionTemplateID int
	// PaymentMethods maps the storefront payment method key (e.g. "cod")
	// to the remote payment method id.
	PaymentMethods map[string]int
}

// PaymentMethodID returns the remote payment method id for a storefront key.
func (b *BranchConfig) PaymentMethodID(key string) (int, bool) {
	id, ok := b.PaymentMethods[key]
	return id, ok
}

// ---------------------------------------------------------------------------
// Collaborator Ports
// ---------------------------------------------------------------------------

// Destination describes where an order ships to, for zone matching.
type Destination struct {
	Country  string
	State    string
	Postcode string
	City     string
}

// ZoneMatcher resolves the shipping zone covering a destination. It is a
// port onto the storefront's shipping-zone engine.
type ZoneMatcher interface {
	MatchZone(ctx context.Context, dest Destination) (int, error)
}

// ConfigProvider loads routing and branch configuration. Implementations
// read persisted settings; the orchestrator loads them fresh per attempt.
type ConfigProvider interface {
	RoutingConfig(ctx context.Context) (*RoutingConfig, error)
	BranchConfig(ctx context.Context, branchID int) (*BranchConfig, error)
}

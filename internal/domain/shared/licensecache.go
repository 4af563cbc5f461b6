package shared

import (
	"context"
	"time"
)

// LicenseVerdictStore caches the outcome of a remote license check so the
// license server is not consulted on every request.
type LicenseVerdictStore interface {
	// GetVerdict returns the cached verdict and whether one is present.
	GetVerdict(ctx context.Context) (valid bool, found bool, err error)

	// SetVerdict caches a verdict for the given TTL.
	SetVerdict(ctx context.Context, valid bool, ttl time.Duration) error
}

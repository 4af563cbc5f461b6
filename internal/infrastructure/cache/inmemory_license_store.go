package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storesync/backend/internal/domain/shared"
)

// InMemoryLicenseStore implements LicenseVerdictStore in process memory.
// Suitable for single-instance deployments and testing.
type InMemoryLicenseStore struct {
	mu        sync.RWMutex
	valid     bool
	expiresAt time.Time
}

// NewInMemoryLicenseStore creates a new in-memory license verdict store
func NewInMemoryLicenseStore() *InMemoryLicenseStore {
	return &InMemoryLicenseStore{}
}

// GetVerdict returns the cached verdict, if present and not expired.
func (s *InMemoryLicenseStore) GetVerdict(_ context.Context) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expiresAt.IsZero() || time.Now().After(s.expiresAt) {
		return false, false, nil
	}
	return s.valid, true, nil
}

// SetVerdict caches a verdict for the given TTL.
func (s *InMemoryLicenseStore) SetVerdict(_ context.Context, valid bool, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = valid
	s.expiresAt = time.Now().Add(ttl)
	return nil
}

// Ensure InMemoryLicenseStore implements LicenseVerdictStore
var _ shared.LicenseVerdictStore = (*InMemoryLicenseStore)(nil)

package cache

import (
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/shared"
	"github.com/storesync/backend/internal/infrastructure/config"
)

// NewLicenseStore creates a license verdict store backed by Redis, falling
// back to process memory when Redis is unavailable. A local fallback only
// costs extra license checks, never incorrect verdicts.
func NewLicenseStore(cfg config.RedisConfig, logger *zap.Logger) shared.LicenseVerdictStore {
	store, err := NewRedisLicenseStore(RedisConfig{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err == nil {
		logger.Info("using Redis license verdict store")
		return store
	}

	logger.Warn("Redis unavailable, falling back to in-memory license verdict store",
		zap.Error(err),
	)
	return NewInMemoryLicenseStore()
}

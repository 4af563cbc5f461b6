package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storesync/backend/internal/domain/shared"
)

const licenseVerdictKey = "license:verdict"

// RedisLicenseStore implements LicenseVerdictStore using Redis. Suitable for
// deployments with multiple instances sharing one verdict.
type RedisLicenseStore struct {
	client *redis.Client
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLicenseStore creates a new Redis-backed license verdict store
func NewRedisLicenseStore(cfg RedisConfig) (*RedisLicenseStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLicenseStore{client: client}, nil
}

// NewRedisLicenseStoreWithClient creates a store with an existing Redis client
func NewRedisLicenseStoreWithClient(client *redis.Client) *RedisLicenseStore {
	return &RedisLicenseStore{client: client}
}

// GetVerdict returns the cached verdict, if any.
func (s *RedisLicenseStore) GetVerdict(ctx context.Context) (bool, bool, error) {
	value, err := s.client.Get(ctx, licenseVerdictKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read license verdict: %w", err)
	}
	return value == "1", true, nil
}

// SetVerdict caches a verdict for the given TTL.
func (s *RedisLicenseStore) SetVerdict(ctx context.Context, valid bool, ttl time.Duration) error {
	value := "0"
	if valid {
		value = "1"
	}
	if err := s.client.Set(ctx, licenseVerdictKey, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache license verdict: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisLicenseStore) Close() error {
	return s.client.Close()
}

// Ensure RedisLicenseStore implements LicenseVerdictStore
var _ shared.LicenseVerdictStore = (*RedisLicenseStore)(nil)

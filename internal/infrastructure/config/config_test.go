package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STORESYNC_APP_NAME":                os.Getenv("STORESYNC_APP_NAME"),
		"STORESYNC_APP_ENV":                 os.Getenv("STORESYNC_APP_ENV"),
		"STORESYNC_APP_PORT":                os.Getenv("STORESYNC_APP_PORT"),
		"STORESYNC_DATABASE_HOST":           os.Getenv("STORESYNC_DATABASE_HOST"),
		"STORESYNC_DATABASE_PORT":           os.Getenv("STORESYNC_DATABASE_PORT"),
		"STORESYNC_DATABASE_USER":           os.Getenv("STORESYNC_DATABASE_USER"),
		"STORESYNC_DATABASE_PASSWORD":       os.Getenv("STORESYNC_DATABASE_PASSWORD"),
		"STORESYNC_DATABASE_DBNAME":         os.Getenv("STORESYNC_DATABASE_DBNAME"),
		"STORESYNC_DATABASE_SSLMODE":        os.Getenv("STORESYNC_DATABASE_SSLMODE"),
		"STORESYNC_DATABASE_MAX_OPEN_CONNS": os.Getenv("STORESYNC_DATABASE_MAX_OPEN_CONNS"),
		"STORESYNC_DATABASE_MAX_IDLE_CONNS": os.Getenv("STORESYNC_DATABASE_MAX_IDLE_CONNS"),
		"STORESYNC_ERP_BASE_URL":            os.Getenv("STORESYNC_ERP_BASE_URL"),
		"STORESYNC_ERP_TOKEN":               os.Getenv("STORESYNC_ERP_TOKEN"),
		"STORESYNC_ERP_TIMEOUT":             os.Getenv("STORESYNC_ERP_TIMEOUT"),
		"STORESYNC_STATUS_LINK_SECRET":      os.Getenv("STORESYNC_STATUS_LINK_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storesync-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storesync", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 45*time.Second, cfg.ERP.Timeout)
		assert.Equal(t, 20*time.Second, cfg.License.Timeout)
		assert.Equal(t, 24*time.Hour, cfg.License.ValidTTL)
		assert.Equal(t, time.Hour, cfg.License.FailOpenTTL)
	})

	t.Run("loads values from environment variables with STORESYNC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORESYNC_APP_NAME", "test-app")
		os.Setenv("STORESYNC_APP_PORT", "9000")
		os.Setenv("STORESYNC_DATABASE_HOST", "testdb.local")
		os.Setenv("STORESYNC_DATABASE_PORT", "5433")
		os.Setenv("STORESYNC_ERP_BASE_URL", "https://erp.example.com/api/")
		os.Setenv("STORESYNC_ERP_TOKEN", "token-123")
		os.Setenv("STORESYNC_ERP_TIMEOUT", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "https://erp.example.com/api/", cfg.ERP.BaseURL)
		assert.Equal(t, "token-123", cfg.ERP.Token)
		assert.Equal(t, 30*time.Second, cfg.ERP.Timeout)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORESYNC_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STORESYNC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORESYNC_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORESYNC_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"STORESYNC_APP_ENV":            os.Getenv("STORESYNC_APP_ENV"),
		"STORESYNC_DATABASE_PASSWORD":  os.Getenv("STORESYNC_DATABASE_PASSWORD"),
		"STORESYNC_DATABASE_SSLMODE":   os.Getenv("STORESYNC_DATABASE_SSLMODE"),
		"STORESYNC_ERP_BASE_URL":       os.Getenv("STORESYNC_ERP_BASE_URL"),
		"STORESYNC_ERP_TOKEN":          os.Getenv("STORESYNC_ERP_TOKEN"),
		"STORESYNC_STATUS_LINK_SECRET": os.Getenv("STORESYNC_STATUS_LINK_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	// Helper to set valid production base config
	setValidProductionBase := func() {
		os.Setenv("STORESYNC_APP_ENV", "production")
		os.Setenv("STORESYNC_DATABASE_PASSWORD", "secure-password")
		os.Setenv("STORESYNC_DATABASE_SSLMODE", "require")
		os.Setenv("STORESYNC_ERP_BASE_URL", "https://erp.example.com/api/")
		os.Setenv("STORESYNC_ERP_TOKEN", "token-123")
		os.Setenv("STORESYNC_STATUS_LINK_SECRET", "a-sufficiently-long-secret")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("STORESYNC_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("STORESYNC_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires erp.base_url in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("STORESYNC_ERP_BASE_URL")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erp.base_url is required in production")
	})

	t.Run("requires erp.token in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("STORESYNC_ERP_TOKEN")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erp.token is required in production")
	})

	t.Run("requires a strong status link secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("STORESYNC_STATUS_LINK_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status_link.secret must be at least 16 characters")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", cfg.Addr())
}

package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storesync/backend/internal/domain/catalog"
	"github.com/storesync/backend/internal/domain/order"
	"github.com/storesync/backend/internal/domain/partner"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&order.Order{},
		&order.LineItem{},
		&order.Note{},
		&partner.Customer{},
		&catalog.Product{},
		&CityRouteRow{},
		&ZoneRouteRow{},
		&ZoneLocationRow{},
		&BranchSettingRow{},
		&PaymentMappingRow{},
	)
	require.NoError(t, err)

	return db
}

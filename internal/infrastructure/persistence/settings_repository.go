package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storesync/backend/internal/domain/shared"
	"github.com/storesync/backend/internal/domain/sync"
)

// CityRouteRow maps a city code to a remote branch id.
type CityRouteRow struct {
	ID       uint   `gorm:"primaryKey"`
	CityCode string `gorm:"type:varchar(50);not null"`
	BranchID int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CityRouteRow) TableName() string {
	return "routing_city_branches"
}

// ZoneRouteRow maps a shipping zone id to a remote branch id.
type ZoneRouteRow struct {
	ID       uint `gorm:"primaryKey"`
	ZoneID   int  `gorm:"not null;uniqueIndex"`
	BranchID int  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ZoneRouteRow) TableName() string {
	return "routing_zone_branches"
}

// ZoneLocationRow is one location covered by a shipping zone. Type is one of
// "country", "state" (stored as COUNTRY:STATE) or "postcode".
type ZoneLocationRow struct {
	ID     uint   `gorm:"primaryKey"`
	ZoneID int    `gorm:"not null;index"`
	Type   string `gorm:"type:varchar(20);not null"`
	Code   string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ZoneLocationRow) TableName() string {
	return "shipping_zone_locations"
}

// BranchSettingRow holds per-branch sync settings.
type BranchSettingRow struct {
	ID                uint `gorm:"primaryKey"`
	BranchID          int  `gorm:"not null;uniqueIndex"`
	SessionTemplateID int  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BranchSettingRow) TableName() string {
	return "branch_settings"
}

// PaymentMappingRow maps a storefront payment method key to a remote payment
// method id for one branch.
type PaymentMappingRow struct {
	ID              uint   `gorm:"primaryKey"`
	BranchID        int    `gorm:"not null;index"`
	PaymentKey      string `gorm:"type:varchar(50);not null"`
	PaymentMethodID int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMappingRow) TableName() string {
	return "branch_payment_mappings"
}

// GormConfigProvider implements sync.ConfigProvider over persisted settings
// rows.
type GormConfigProvider struct {
	db *gorm.DB
}

// NewGormConfigProvider creates a new GormConfigProvider
func NewGormConfigProvider(db *gorm.DB) *GormConfigProvider {
	return &GormConfigProvider{db: db}
}

// RoutingConfig loads the full routing tables.
func (r *GormConfigProvider) RoutingConfig(ctx context.Context) (*sync.RoutingConfig, error) {
	var cityRows []CityRouteRow
	if err := r.db.WithContext(ctx).Order("id").Find(&cityRows).Error; err != nil {
		return nil, err
	}

	var zoneRows []ZoneRouteRow
	if err := r.db.WithContext(ctx).Find(&zoneRows).Error; err != nil {
		return nil, err
	}

	cities := make([]sync.CityBranch, len(cityRows))
	for i, row := range cityRows {
		cities[i] = sync.CityBranch{CityCode: row.CityCode, BranchID: row.BranchID}
	}
	zones := make(map[int]int, len(zoneRows))
	for _, row := range zoneRows {
		zones[row.ZoneID] = row.BranchID
	}
	return sync.NewRoutingConfig(cities, zones), nil
}

// BranchConfig loads the settings for one branch, including its payment
// method mapping.
func (r *GormConfigProvider) BranchConfig(ctx context.Context, branchID int) (*sync.BranchConfig, error) {
	var setting BranchSettingRow
	err := r.db.WithContext(ctx).First(&setting, "branch_id = ?", branchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var mappings []PaymentMappingRow
	if err := r.db.WithContext(ctx).Find(&mappings, "branch_id = ?", branchID).Error; err != nil {
		return nil, err
	}

	methods := make(map[string]int, len(mappings))
	for _, row := range mappings {
		methods[row.PaymentKey] = row.PaymentMethodID
	}
	return &sync.BranchConfig{
		BranchID:          branchID,
		SessionTemplateID: setting.SessionTemplateID,
		PaymentMethods:    methods,
	}, nil
}

// Ensure GormConfigProvider implements sync.ConfigProvider
var _ sync.ConfigProvider = (*GormConfigProvider)(nil)

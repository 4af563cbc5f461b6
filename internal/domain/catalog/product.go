package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storesync/backend/internal/domain/shared"
)

// Product is a storefront product. SKU is the identifier shared with the
// remote ERP (its default_code).
type Product struct {
	shared.BaseEntity
	SKU           string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name string, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("MISSING_SKU", "Product SKU is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("MISSING_NAME", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        strings.TrimSpace(sku),
		Name:       name,
		Price:      price,
	}, nil
}

// SetStockQuantity applies an absolute stock level pushed by the ERP.
func (p *Product) SetStockQuantity(qty int) {
	if qty < 0 {
		qty = 0
	}
	p.StockQuantity = qty
}

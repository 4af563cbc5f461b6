package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/catalog"
	"github.com/storesync/backend/internal/domain/sync"
)

// ProductSyncService keeps product data aligned in both directions: price and
// description flow out to the remote system when a local product changes, and
// absolute stock levels flow in through the inventory webhook.
type ProductSyncService struct {
	products catalog.ProductRepository
	gateway  sync.Gateway
	logger   *zap.Logger
}

// NewProductSyncService creates a new ProductSyncService
func NewProductSyncService(products catalog.ProductRepository, gateway sync.Gateway, logger *zap.Logger) *ProductSyncService {
	return &ProductSyncService{
		products: products,
		gateway:  gateway,
		logger:   logger,
	}
}

// PushProduct sends the product's current price and description to the remote
// system, keyed by SKU.
func (s *ProductSyncService) PushProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}

	err = s.gateway.UpdateProduct(ctx, product.SKU, sync.ProductUpdate{
		Price:       product.Price.String(),
		Description: product.Description,
	})
	if err != nil {
		s.logger.Error("failed to push product update",
			zap.String("sku", product.SKU), zap.Error(err))
		return err
	}

	s.logger.Info("pushed product update", zap.String("sku", product.SKU))
	return nil
}

// SetStock applies an absolute stock quantity reported by the remote system.
// The SKU must identify an existing local product.
func (s *ProductSyncService) SetStock(ctx context.Context, sku string, quantity int) error {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		s.logger.Warn("stock update for unknown sku", zap.String("sku", sku))
		return err
	}

	product.SetStockQuantity(quantity)
	if err := s.products.Save(ctx, product); err != nil {
		return fmt.Errorf("save product: %w", err)
	}

	s.logger.Info("applied stock update",
		zap.String("sku", sku), zap.Int("quantity", quantity))
	return nil
}

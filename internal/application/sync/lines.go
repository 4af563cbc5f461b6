package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/order"
	"github.com/storesync/backend/internal/domain/sync"
)

// LineMapper translates storefront line items into remote product
// references.
type LineMapper struct {
	gateway sync.Gateway
	logger  *zap.Logger
}

// NewLineMapper creates a new LineMapper
func NewLineMapper(gateway sync.Gateway, logger *zap.Logger) *LineMapper {
	return &LineMapper{
		gateway: gateway,
		logger:  logger,
	}
}

// MapLines maps every line item to a remote product id, failing fast on the
// first unmappable item so a line set is never partially submitted. The
// remote SKU search is a substring match and may over-match; only a
// candidate whose code exactly equals the SKU is accepted.
func (m *LineMapper) MapLines(ctx context.Context, items []order.LineItem) ([]sync.OrderLine, error) {
	lines := make([]sync.OrderLine, 0, len(items))
	for _, item := range items {
		if item.SKU == "" {
			return nil, &sync.MissingSKUError{ProductID: item.ProductID.String()}
		}

		candidates, err := m.gateway.FindProductsBySKU(ctx, item.SKU)
		if err != nil {
			return nil, err
		}

		productID := 0
		for _, candidate := range candidates {
			if candidate.DefaultCode == item.SKU {
				productID = candidate.ID
				break
			}
		}
		if productID == 0 {
			return nil, &sync.ProductNotFoundError{SKU: item.SKU}
		}

		m.logger.Debug("mapped order line",
			zap.String("sku", item.SKU),
			zap.Int("remote_product_id", productID),
		)
		lines = append(lines, sync.OrderLine{
			ProductID:         productID,
			Qty:               item.Quantity,
			LotName:           nil,
			DiscountByPercent: 0,
		})
	}
	return lines, nil
}

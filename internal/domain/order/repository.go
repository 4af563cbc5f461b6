package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for persisting orders
type Repository interface {
	// Save creates or updates an order, including notes and line items
	Save(ctx context.Context, o *Order) error

	// FindByID finds an order by its id
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its storefront number
	FindByNumber(ctx context.Context, number string) (*Order, error)
}

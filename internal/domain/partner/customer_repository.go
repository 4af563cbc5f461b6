package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by exact email
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}

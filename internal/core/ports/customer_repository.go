package ports

import (
	"context"

	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
// The storage layer must enforce email uniqueness with a unique constraint;
// Add surfaces a collision as an ObjectAlreadyExistsError so the resolver can
// fall back to the existing record.
type CustomerRepository interface {
	// Add persists a new customer aggregate.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByEmail retrieves a customer by its unique email address.
	// Returns an ObjectNotFoundError when no customer has that email.
	GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error)
}

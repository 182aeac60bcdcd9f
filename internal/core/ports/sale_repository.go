package ports

import (
	"context"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
)

// SaleRepository defines the persistence contract for sale aggregates.
// A sale and its line items are written as a single atomic unit; later
// updates (status transition, dispatch identifier) are single-row updates.
type SaleRepository interface {
	// Add persists a new sale aggregate together with its line items.
	Add(ctx context.Context, aggregate *sale.Sale) error

	// Update persists changes to an existing sale aggregate
	// (status transition, cleared expiration, dispatch identifier).
	Update(ctx context.Context, aggregate *sale.Sale) error

	// Get retrieves a sale aggregate by its unique identifier,
	// including its line items.
	Get(ctx context.Context, id kernel.UUID) (*sale.Sale, error)

	// GetAllExpired retrieves every pending sale whose expiration deadline
	// is at or before the given instant.
	GetAllExpired(ctx context.Context, now time.Time) ([]*sale.Sale, error)

	// Delete removes a sale and, by cascade, its line items.
	// Used only by the expiration cleanup sweep.
	Delete(ctx context.Context, id kernel.UUID) error
}

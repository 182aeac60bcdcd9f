package ports

import "context"

// AvailabilityType classifies how the inventory service can fulfill a product.
type AvailabilityType string

const (
	// AvailabilityStock means the product ships from existing stock.
	AvailabilityStock AvailabilityType = "STOCK"
	// AvailabilityManufacturing means the product is fabricated on demand
	// and carries an estimated lead time in days.
	AvailabilityManufacturing AvailabilityType = "MANUFACTURING"
	// AvailabilityMadeToOrder means the product is custom built; it carries
	// no stock but is not scheduled like manufacturing either.
	AvailabilityMadeToOrder AvailabilityType = "MADE_TO_ORDER"
)

// IsManufacturing reports whether the type carries a fabrication lead time.
func (t AvailabilityType) IsManufacturing() bool {
	return t == AvailabilityManufacturing
}

// Product is the inventory metadata relevant to fulfillment planning.
type Product struct {
	ID               string
	Name             string
	AvailabilityType AvailabilityType
	// EstimatedDays is the fabrication lead time; meaningful only for
	// MANUFACTURING products.
	EstimatedDays int
}

// CatalogProduct is a product listing entry returned by catalog search,
// used by the storefront product proxy.
type CatalogProduct struct {
	ID               string
	SKU              string
	Name             string
	Price            float64
	AvailabilityType AvailabilityType
	EstimatedDays    int
	Stock            int
}

// WithdrawalChannel tags a stock withdrawal with its sales channel.
type WithdrawalChannel string

// WithdrawalChannelStore marks an in-store pickup withdrawal.
const WithdrawalChannelStore WithdrawalChannel = "tienda"

// InventoryClient is the outbound contract to the external inventory service.
//
// GetProduct failures are non-fatal to all callers: the fulfillment
// calculator degrades the item to STOCK and the sale proceeds. The three
// stock-affecting operations are best-effort post-commit side effects; their
// failures are logged by callers and never surfaced as request failures.
// Every call is attempted exactly once, no retries.
type InventoryClient interface {
	// GetProduct fetches fulfillment metadata for a catalog product.
	GetProduct(ctx context.Context, productID string) (Product, error)

	// SearchProducts lists catalog products, optionally filtered by a
	// free-text query. Used by the storefront product proxy.
	SearchProducts(ctx context.Context, query string) ([]CatalogProduct, error)

	// Reserve records a non-committing stock hold for a pending sale.
	// The key is the inventory-facing product key (see sale.Item.InventoryKey).
	Reserve(ctx context.Context, inventoryKey string, quantity int) error

	// MarkForDispatch flags stock for outbound shipping.
	MarkForDispatch(ctx context.Context, inventoryKey string, quantity int) error

	// WithdrawStock decrements stock for an in-store pickup.
	WithdrawStock(ctx context.Context, inventoryKey string, quantity int, channel WithdrawalChannel) error
}

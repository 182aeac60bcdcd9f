package sale

import (
	"math"
	"strings"

	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

// inventoryKeyPrefix is the catalog prefix stripped when translating a
// product identifier into the inventory service's own key format.
const inventoryKeyPrefix = "prod-"

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem constructor")

// Item is a sale line item. It references a product in the external inventory
// catalog by an opaque identifier and captures the unit price at the moment of
// sale creation; the captured price never changes even if the catalog price does.
//
// Item is an immutable value object owned by its Sale.
type Item struct { //nolint:recvcheck //using for validation
	productID string
	quantity  int
	unitPrice float64

	guard guard.ConstructorGuard
}

// NewItem creates a validated line item.
// The product identifier must be non-empty, quantity must be at least 1,
// and the unit price must be a finite number greater than or equal to 0.
func NewItem(productID string, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(productID) == "" {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}
	item.productID = productID

	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt)
	}
	item.quantity = quantity

	if unitPrice < 0 || math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) {
		return Item{}, errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0, math.MaxFloat64)
	}
	item.unitPrice = unitPrice

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog-facing product identifier.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price captured at sale creation.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity x unit price for this line.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

// InventoryKey translates the catalog product identifier into the inventory
// service's key format: the "prod-" prefix is stripped and the remainder is
// upper-cased ("prod-s1" -> "S1"). Every inventory call uses this form.
func (i Item) InventoryKey() string {
	return strings.ToUpper(strings.TrimPrefix(i.productID, inventoryKeyPrefix))
}

package sale

import (
	"fmt"

	"sales/internal/pkg/errs"
)

// DeliveryMethod describes how a sale is fulfilled: picked up in store or
// dispatched to the customer's address.
type DeliveryMethod int

const (
	// DeliveryMethodUnknown represents an invalid or undefined delivery method.
	DeliveryMethodUnknown DeliveryMethod = iota

	// DeliveryMethodPickup means the customer collects the goods in store.
	DeliveryMethodPickup

	// DeliveryMethodDispatch means the goods are shipped via the dispatch service.
	DeliveryMethodDispatch
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		DeliveryMethodUnknown:  "Unknown",
		DeliveryMethodPickup:   "PICKUP",
		DeliveryMethodDispatch: "DISPATCH",
	}
}

func getValidDeliveryMethodStrings() map[DeliveryMethod]string {
	//nolint:exhaustive // DeliveryMethodUnknown is intentionally excluded as it's invalid
	return map[DeliveryMethod]string{
		DeliveryMethodPickup:   "PICKUP",
		DeliveryMethodDispatch: "DISPATCH",
	}
}

// DeliveryMethodFromString parses a delivery method from its wire
// representation ("PICKUP" or "DISPATCH").
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, str := range getValidDeliveryMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryMethod",
		fmt.Errorf("%q is not a valid delivery method", s),
	)
}

// Validate checks if the DeliveryMethod value is valid.
// Valid methods are: PICKUP, DISPATCH.
func (m DeliveryMethod) Validate() error {
	if _, ok := getValidDeliveryMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryMethod",
			fmt.Errorf("%d is not a valid delivery method", m),
		)
	}
	return nil
}

// String returns the wire representation of the delivery method.
// Implements fmt.Stringer and is safe to call on any value.
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

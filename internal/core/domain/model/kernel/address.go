package kernel

import (
	"strings"

	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using the NewAddress constructor to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a postal address used for customer records and dispatch
// destinations. Address is an immutable value object; the zero value is invalid
// and will fail validation - use NewAddress to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("123 Main Street, Springfield")
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	value string

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address from a free-form postal address line.
// Leading and trailing whitespace is trimmed; the result must be non-empty.
func NewAddress(value string) (Address, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}

	return Address{
		value: trimmed,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Address was properly constructed using the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// String returns the address line.
func (a Address) String() string {
	return a.value
}

// IsEqual compares two addresses by their normalized address line.
func (a Address) IsEqual(other Address) bool {
	return a.value == other.value
}

package kernel

import (
	"net/mail"
	"strings"

	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when attempting to use an improperly initialized Email.
// Emails must be created using the NewEmail constructor to ensure validity.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError(
	"email must be created via NewEmail constructor")

// Email represents a validated email address. It is the natural key for
// customer records, so normalization matters: the address is trimmed and
// lower-cased on construction, making lookups case-insensitive.
//
// The zero value is invalid - use NewEmail to create instances.
//
// Example:
//
//	email, err := kernel.NewEmail("Jane@Example.com")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(email.String()) // "jane@example.com"
type Email struct { //nolint:recvcheck //using for validation
	value string

	guard guard.ConstructorGuard
}

// NewEmail creates a new Email from its string form.
// The value is trimmed, validated against RFC 5322 address syntax, and
// lower-cased so that the same mailbox always produces the same value.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	parsed, err := mail.ParseAddress(trimmed)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}

	return Email{
		value: strings.ToLower(parsed.Address),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Email was properly constructed using the constructor.
func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

// String returns the normalized email address.
func (e Email) String() string {
	return e.value
}

// IsEqual compares two emails by their normalized address.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

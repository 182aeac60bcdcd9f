package customer

import (
	"errors"
	"strings"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not created
// through the NewCustomer or RestoreCustomer factory methods.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Customer is the aggregate root for a buyer record. Customers are created
// lazily the first time a sale references an email not yet on file and are
// reused for every later sale with that email.
//
// The email is the unique natural key; storage enforces uniqueness and the
// resolver treats a collision on create as "use the existing record".
type Customer struct {
	id             kernel.UUID
	name           string
	email          kernel.Email
	address        kernel.Address
	phone          *string
	documentNumber *string
	createdAt      time.Time

	isConstructed bool
}

// NewCustomer creates a new Customer with validation.
// Name, email, and address are required; phone and document number are optional.
func NewCustomer(
	id kernel.UUID,
	name string,
	email kernel.Email,
	address kernel.Address,
	phone *string,
	documentNumber *string,
	now time.Time,
) (*Customer, error) {
	c := &Customer{
		isConstructed: true,
		createdAt:     now,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
		c.setAddress(address),
	); err != nil {
		return nil, err
	}

	c.phone = phone
	c.documentNumber = documentNumber

	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistence.
func RestoreCustomer(
	id kernel.UUID,
	name string,
	email kernel.Email,
	address kernel.Address,
	phone *string,
	documentNumber *string,
	createdAt time.Time,
) (*Customer, error) {
	return NewCustomer(id, name, email, address, phone, documentNumber, createdAt)
}

// Validate ensures the Customer instance was properly constructed through a factory.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}

	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's unique email address.
func (c *Customer) Email() kernel.Email {
	return c.email
}

// Address returns the customer's postal address.
func (c *Customer) Address() kernel.Address {
	return c.address
}

// Phone returns the optional phone number.
func (c *Customer) Phone() *string {
	return c.phone
}

// DocumentNumber returns the optional identity document number.
func (c *Customer) DocumentNumber() *string {
	return c.documentNumber
}

// CreatedAt returns the creation instant of the record.
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// UpdateContact replaces the customer's contact details. This is the explicit
// customer-edit operation; sale creation never mutates an existing customer.
func (c *Customer) UpdateContact(
	name string,
	email kernel.Email,
	address kernel.Address,
	phone *string,
	documentNumber *string,
) error {
	if err := errors.Join(
		c.setName(name),
		c.setEmail(email),
		c.setAddress(address),
	); err != nil {
		return err
	}

	c.phone = phone
	c.documentNumber = documentNumber
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *Customer) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

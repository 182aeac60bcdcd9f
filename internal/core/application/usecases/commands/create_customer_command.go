package commands

import (
	"errors"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand represents a request to register a customer directly,
// ahead of any sale. The email must not already be on file.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	name           string
	email          kernel.Email
	address        kernel.Address
	phone          *string
	documentNumber *string

	guard guard.ConstructorGuard
}

// NewCreateCustomerCommand creates a command to register a new customer.
// Name, email, and address are required; phone and document number are optional.
func NewCreateCustomerCommand(input CustomerInput) (CreateCustomerCommand, error) {
	customerCommand := CreateCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := customerCommand.setDetails(input); err != nil {
		return CreateCustomerCommand{}, err
	}

	return customerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCustomerCommandIsNotConstructed if validation fails.
func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

// Name returns the customer's display name.
func (c CreateCustomerCommand) Name() string {
	return c.name
}

// Email returns the customer's unique email address.
func (c CreateCustomerCommand) Email() kernel.Email {
	return c.email
}

// Address returns the customer's postal address.
func (c CreateCustomerCommand) Address() kernel.Address {
	return c.address
}

// Phone returns the optional phone number.
func (c CreateCustomerCommand) Phone() *string {
	return c.phone
}

// DocumentNumber returns the optional identity document number.
func (c CreateCustomerCommand) DocumentNumber() *string {
	return c.documentNumber
}

func (c *CreateCustomerCommand) setDetails(input CustomerInput) error {
	email, emailErr := kernel.NewEmail(input.Email)
	address, addressErr := kernel.NewAddress(input.Address)

	var nameErr error
	if input.Name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(nameErr, emailErr, addressErr); err != nil {
		return err
	}

	c.name = input.Name
	c.email = email
	c.address = address
	c.phone = input.Phone
	c.documentNumber = input.DocumentNumber
	return nil
}

package commands

import (
	"errors"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

var ErrUpdateCustomerCommandIsNotConstructed = errors.New(
	"UpdateCustomerCommand must be created via NewUpdateCustomerCommand constructor",
)

// UpdateCustomerCommand represents an explicit edit of a customer's contact
// details. This is the only path that mutates an existing customer; sale
// creation never does.
type UpdateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID     kernel.UUID
	name           string
	email          kernel.Email
	address        kernel.Address
	phone          *string
	documentNumber *string

	guard guard.ConstructorGuard
}

// NewUpdateCustomerCommand creates a command to replace the given customer's
// contact details with the supplied values.
func NewUpdateCustomerCommand(customerID kernel.UUID, input CustomerInput) (UpdateCustomerCommand, error) {
	updateCommand := UpdateCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		updateCommand.setCustomerID(customerID),
		updateCommand.setDetails(input),
	); err != nil {
		return UpdateCustomerCommand{}, err
	}

	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateCustomerCommandIsNotConstructed if validation fails.
func (c UpdateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer to edit.
func (c UpdateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Name returns the new display name.
func (c UpdateCustomerCommand) Name() string {
	return c.name
}

// Email returns the new email address.
func (c UpdateCustomerCommand) Email() kernel.Email {
	return c.email
}

// Address returns the new postal address.
func (c UpdateCustomerCommand) Address() kernel.Address {
	return c.address
}

// Phone returns the new optional phone number.
func (c UpdateCustomerCommand) Phone() *string {
	return c.phone
}

// DocumentNumber returns the new optional identity document number.
func (c UpdateCustomerCommand) DocumentNumber() *string {
	return c.documentNumber
}

func (c *UpdateCustomerCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *UpdateCustomerCommand) setDetails(input CustomerInput) error {
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

package commands

import (
	"context"
	"time"

	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
)

// CreateCustomerCommandHandler handles direct customer registration.
// Unlike the resolver used during sale creation, a duplicate email here is
// an error surfaced to the caller, not a fallback to the existing record.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

// NewCreateCustomerCommandHandler creates a handler for customer registration.
func NewCreateCustomerCommandHandler(uowFactory CustomerUoWFactory) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the customer and returns the persisted aggregate.
// Returns an ObjectAlreadyExistsError when the email is already on file.
func (h CreateCustomerCommandHandler) Handle(
	ctx context.Context,
	command CreateCustomerCommand,
) (*customer.Customer, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newCustomer, err := customer.NewCustomer(
		kernel.NewUUID(),
		command.Name(),
		command.Email(),
		command.Address(),
		command.Phone(),
		command.DocumentNumber(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CustomerRepository().Add(ctx, newCustomer); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newCustomer, nil
}

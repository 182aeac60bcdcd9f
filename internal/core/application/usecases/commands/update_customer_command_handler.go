package commands

import (
	"context"

	"sales/internal/core/domain/model/customer"
)

// UpdateCustomerCommandHandler handles explicit customer edits.
type UpdateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

// NewUpdateCustomerCommandHandler creates a handler for customer edits.
func NewUpdateCustomerCommandHandler(uowFactory CustomerUoWFactory) UpdateCustomerCommandHandler {
	return UpdateCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the customer's contact details and returns the updated
// aggregate. Returns an ObjectNotFoundError when the customer does not exist
// and an ObjectAlreadyExistsError when the new email belongs to another customer.
func (h UpdateCustomerCommandHandler) Handle(
	ctx context.Context,
	command UpdateCustomerCommand,
) (*customer.Customer, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	existing, err := customerRepo.Get(ctx, command.CustomerID())
	if err != nil {
		return nil, err
	}

	if err = existing.UpdateContact(
		command.Name(),
		command.Email(),
		command.Address(),
		command.Phone(),
		command.DocumentNumber(),
	); err != nil {
		return nil, err
	}

	if err = customerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}

package commands

import (
	"errors"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/guard"
)

var ErrCompleteSaleCommandIsNotConstructed = errors.New(
	"CompleteSaleCommand must be created via NewCompleteSaleCommand constructor",
)

// CompleteSaleCommand confirms a pending reservation, turning it into a
// completed sale. Only the status transitions; no inventory or dispatch
// side effects run on completion.
type CompleteSaleCommand struct { //nolint:recvcheck //using for validation
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteSaleCommand creates a command to confirm the given pending sale.
func NewCompleteSaleCommand(saleID kernel.UUID) (CompleteSaleCommand, error) {
	completeCommand := CompleteSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := completeCommand.setSaleID(saleID); err != nil {
		return CompleteSaleCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteSaleCommandIsNotConstructed if validation fails.
func (c CompleteSaleCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSaleCommandIsNotConstructed)
}

// SaleID returns the identifier of the sale to confirm.
func (c CompleteSaleCommand) SaleID() kernel.UUID {
	return c.saleID
}

func (c *CompleteSaleCommand) setSaleID(saleID kernel.UUID) error {
	if err := saleID.Validate(); err != nil {
		return err
	}

	c.saleID = saleID
	return nil
}

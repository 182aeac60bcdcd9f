package commands

import (
	"errors"

	"sales/internal/pkg/guard"
)

var ErrCleanupExpiredSalesCommandIsNotConstructed = errors.New(
	"CleanupExpiredSalesCommand must be created via NewCleanupExpiredSalesCommand constructor",
)

// CleanupExpiredSalesCommand triggers a sweep that deletes every pending
// sale whose reservation window has passed. This is a parameterless command:
// the expiration deadline lives on each sale.
type CleanupExpiredSalesCommand struct {
	guard guard.ConstructorGuard
}

// NewCleanupExpiredSalesCommand creates a command to trigger the cleanup sweep.
func NewCleanupExpiredSalesCommand() CleanupExpiredSalesCommand {
	return CleanupExpiredSalesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCleanupExpiredSalesCommandIsNotConstructed if validation fails.
func (c *CleanupExpiredSalesCommand) Validate() error {
	return c.guard.Validate(
		ErrCleanupExpiredSalesCommandIsNotConstructed,
	)
}

package commands

import (
	"context"
	"time"

	"sales/internal/core/domain/model/kernel"
)

// CleanupExpiredSalesResult reports the outcome of an expiration sweep.
type CleanupExpiredSalesResult struct {
	// Count is the number of sales deleted by this sweep.
	Count int

	// DeletedIDs lists the identifiers of the deleted sales.
	DeletedIDs []kernel.UUID
}

// CleanupExpiredSalesCommandHandler deletes expired pending reservations.
// A sale and its line items are removed together; completed sales and
// still-live reservations are never touched. Reserved stock is released
// implicitly, since reservations in the inventory service are non-committing.
type CleanupExpiredSalesCommandHandler struct {
	uowFactory SaleUoWFactory
}

// NewCleanupExpiredSalesCommandHandler creates a handler for the cleanup sweep.
func NewCleanupExpiredSalesCommandHandler(uowFactory SaleUoWFactory) CleanupExpiredSalesCommandHandler {
	return CleanupExpiredSalesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes every pending sale whose expiration deadline has passed
// and reports how many were removed. An empty sweep is a normal outcome.
func (h CleanupExpiredSalesCommandHandler) Handle(
	ctx context.Context,
	command CleanupExpiredSalesCommand,
) (CleanupExpiredSalesResult, error) {
	if err := command.Validate(); err != nil {
		return CleanupExpiredSalesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CleanupExpiredSalesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saleRepo := uow.SaleRepository()

	expired, err := saleRepo.GetAllExpired(ctx, time.Now())
	if err != nil {
		return CleanupExpiredSalesResult{}, err
	}

	deletedIDs := make([]kernel.UUID, 0, len(expired))
	for _, expiredSale := range expired {
		if err = saleRepo.Delete(ctx, expiredSale.ID()); err != nil {
			return CleanupExpiredSalesResult{}, err
		}
		deletedIDs = append(deletedIDs, expiredSale.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return CleanupExpiredSalesResult{}, err
	}

	return CleanupExpiredSalesResult{
		Count:      len(deletedIDs),
		DeletedIDs: deletedIDs,
	}, nil
}

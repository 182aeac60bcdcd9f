package commands

import (
	"context"
	"time"

	"sales/internal/core/domain/model/sale"
)

// CompleteSaleCommandHandler handles confirmation of pending reservations.
// The transition is rejected for sales that are not pending or whose
// reservation window has already passed; the distinction travels in the
// StateConflictError cause so the transport layer can answer precisely.
//
// Example:
//
//	handler := NewCompleteSaleCommandHandler(uowFactory)
//	completed, err := handler.Handle(ctx, cmd)
//	var conflict *errs.StateConflictError
//	switch {
//	case errors.As(err, &conflict):
//	    log.Printf("cannot complete: %v", conflict.Cause)
//	case err != nil:
//	    log.Printf("completion failed: %v", err)
//	default:
//	    log.Printf("sale %s completed", completed.ID())
//	}
type CompleteSaleCommandHandler struct {
	uowFactory SaleUoWFactory
}

// NewCompleteSaleCommandHandler creates a handler for sale confirmation.
func NewCompleteSaleCommandHandler(uowFactory SaleUoWFactory) CompleteSaleCommandHandler {
	return CompleteSaleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command and returns the updated sale.
// Returns an ObjectNotFoundError when the sale does not exist and a
// StateConflictError when it is not pending or has expired.
func (h CompleteSaleCommandHandler) Handle(ctx context.Context, command CompleteSaleCommand) (*sale.Sale, error) {
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

	saleRepo := uow.SaleRepository()

	pendingSale, err := saleRepo.Get(ctx, command.SaleID())
	if err != nil {
		return nil, err
	}

	if err = pendingSale.Complete(time.Now()); err != nil {
		return nil, err
	}

	if err = saleRepo.Update(ctx, pendingSale); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pendingSale, nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/core/domain/services"
	"sales/internal/core/ports"
)

// CreateSaleResult carries everything the caller needs to describe the
// created sale: the persisted aggregate, the resolved customer, and the
// fulfillment plan that produced the delivery date.
type CreateSaleResult struct {
	Sale        *sale.Sale
	Customer    *customer.Customer
	Fulfillment services.FulfillmentInfo
}

// CreateSaleCommandHandler orchestrates sale creation end to end: fulfillment
// planning, customer resolution, atomic persistence of the sale with its
// items, and post-commit inventory/dispatch side effects.
//
// The side effects run only after the transaction commits and are strictly
// best-effort: a failed reservation, withdrawal, or dispatch creation is
// logged and never fails the already-persisted sale. Each external call is
// attempted exactly once.
//
// Example:
//
//	handler := NewCreateSaleCommandHandler(uowFactory, calculator, inventoryClient, dispatchClient, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("sale creation failed: %w", err)
//	}
//	log.Printf("sale %s total %.2f", result.Sale.ID(), result.Sale.Total())
type CreateSaleCommandHandler struct {
	uowFactory  UoWFactory
	fulfillment services.FulfillmentCalculator
	inventory   ports.InventoryClient
	dispatch    ports.DispatchClient
	resolver    CustomerResolver
	logger      *slog.Logger
}

// NewCreateSaleCommandHandler creates a handler for sale creation operations.
func NewCreateSaleCommandHandler(
	uowFactory UoWFactory,
	fulfillment services.FulfillmentCalculator,
	inventory ports.InventoryClient,
	dispatch ports.DispatchClient,
	logger *slog.Logger,
) CreateSaleCommandHandler {
	return CreateSaleCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		inventory:   inventory,
		dispatch:    dispatch,
		resolver:    NewCustomerResolver(),
		logger:      logger.With("component", "create_sale_handler"),
	}
}

// Handle processes the sale creation command.
//
// Steps: plan fulfillment from inventory availability, resolve the customer
// by email, build the sale aggregate (total and, for PENDING, the expiration
// deadline), persist sale and items in one transaction, then run the
// side effects that match the sale's status and delivery method.
func (h CreateSaleCommandHandler) Handle(ctx context.Context, command CreateSaleCommand) (CreateSaleResult, error) {
	if err := command.Validate(); err != nil {
		return CreateSaleResult{}, err
	}

	now := time.Now()
	fulfillment := h.fulfillment.Calculate(ctx, command.Items(), command.DeliveryDate(), now)

	uow := h.uowFactory.Create()

	// Customer resolution runs outside the sale transaction: a unique-email
	// collision aborts an open transaction, and re-fetching the winning
	// record needs a live connection.
	resolvedCustomer, err := h.resolver.Resolve(ctx, uow.CustomerRepository(), command.Customer(), now)
	if err != nil {
		return CreateSaleResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return CreateSaleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newSale, err := sale.NewSale(
		kernel.NewUUID(),
		resolvedCustomer.ID(),
		command.Items(),
		command.DeliveryMethod(),
		command.Status(),
		fulfillment.DeliveryDate,
		now,
	)
	if err != nil {
		return CreateSaleResult{}, err
	}

	if err = uow.SaleRepository().Add(ctx, newSale); err != nil {
		return CreateSaleResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateSaleResult{}, err
	}

	for _, effect := range h.sideEffectsFor(newSale) {
		effect(ctx, uow, newSale, resolvedCustomer)
	}

	return CreateSaleResult{
		Sale:        newSale,
		Customer:    resolvedCustomer,
		Fulfillment: fulfillment,
	}, nil
}

type sideEffect func(ctx context.Context, uow UoW, s *sale.Sale, c *customer.Customer)

// sideEffectsFor selects the post-commit side effects for a sale:
//
//	PENDING (any method)  -> reserve stock per item
//	COMPLETED + PICKUP    -> withdraw stock, or mark manufacturing items for dispatch
//	COMPLETED + DISPATCH  -> mark all items for dispatch, then create the dispatch order
func (h CreateSaleCommandHandler) sideEffectsFor(s *sale.Sale) []sideEffect {
	switch {
	case s.Status() == sale.StatusPending:
		return []sideEffect{h.reserveStock}
	case s.DeliveryMethod() == sale.DeliveryMethodPickup:
		return []sideEffect{h.processPickupItems}
	case s.DeliveryMethod() == sale.DeliveryMethodDispatch:
		return []sideEffect{h.markItemsForDispatch, h.createDispatchOrder}
	}

	return nil
}

func (h CreateSaleCommandHandler) reserveStock(ctx context.Context, _ UoW, s *sale.Sale, _ *customer.Customer) {
	for _, item := range s.Items() {
		if err := h.inventory.Reserve(ctx, item.InventoryKey(), item.Quantity()); err != nil {
			h.logger.WarnContext(ctx, "Stock reservation failed",
				"sale_id", s.ID(), "product_id", item.ProductID(), "error", err)
		}
	}
}

// processPickupItems settles a completed pickup sale item by item. Each item's
// availability is re-checked at withdrawal time: a manufacturing item cannot
// be handed over at the counter and is marked for dispatch instead, while
// everything else is withdrawn through the in-store channel.
func (h CreateSaleCommandHandler) processPickupItems(ctx context.Context, _ UoW, s *sale.Sale, _ *customer.Customer) {
	for _, item := range s.Items() {
		product, err := h.inventory.GetProduct(ctx, item.ProductID())
		if err == nil && product.AvailabilityType.IsManufacturing() {
			if err = h.inventory.MarkForDispatch(ctx, item.InventoryKey(), item.Quantity()); err != nil {
				h.logger.WarnContext(ctx, "Dispatch marking failed for manufacturing item",
					"sale_id", s.ID(), "product_id", item.ProductID(), "error", err)
			}
			continue
		}

		if err = h.inventory.WithdrawStock(ctx, item.InventoryKey(), item.Quantity(), ports.WithdrawalChannelStore); err != nil {
			h.logger.WarnContext(ctx, "Stock withdrawal failed",
				"sale_id", s.ID(), "product_id", item.ProductID(), "error", err)
		}
	}
}

func (h CreateSaleCommandHandler) markItemsForDispatch(ctx context.Context, _ UoW, s *sale.Sale, _ *customer.Customer) {
	for _, item := range s.Items() {
		if err := h.inventory.MarkForDispatch(ctx, item.InventoryKey(), item.Quantity()); err != nil {
			h.logger.WarnContext(ctx, "Dispatch marking failed",
				"sale_id", s.ID(), "product_id", item.ProductID(), "error", err)
		}
	}
}

// createDispatchOrder registers the sale with the external dispatch service
// and, on success, stores the returned dispatch identifier on the sale. When
// the service is down the sale simply keeps a nil dispatch identifier; no
// identifier is ever fabricated.
func (h CreateSaleCommandHandler) createDispatchOrder(ctx context.Context, uow UoW, s *sale.Sale, c *customer.Customer) {
	deliveryDate := time.Now()
	if s.DeliveryDate() != nil {
		deliveryDate = *s.DeliveryDate()
	}

	contactPhone := c.Email().String()
	if c.Phone() != nil {
		contactPhone = *c.Phone()
	}

	items := make([]ports.DispatchItem, 0, len(s.Items()))
	for _, item := range s.Items() {
		items = append(items, ports.DispatchItem{
			ProductID:   item.ProductID(),
			Description: item.ProductID(),
			Quantity:    item.Quantity(),
		})
	}

	confirmation, err := h.dispatch.CreateDispatch(ctx, ports.DispatchRequest{
		SaleID:        s.ID().String(),
		CustomerName:  c.Name(),
		CustomerEmail: c.Email().String(),
		CustomerPhone: contactPhone,
		Address:       c.Address().String(),
		DeliveryDate:  deliveryDate,
		Items:         items,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Dispatch order creation failed, sale kept without dispatch id",
			"sale_id", s.ID(), "error", err)
		return
	}

	if err = s.AttachDispatchID(confirmation.DispatchID); err != nil {
		h.logger.ErrorContext(ctx, "Dispatch service returned an unusable confirmation",
			"sale_id", s.ID(), "error", err)
		return
	}

	if err = uow.SaleRepository().Update(ctx, s); err != nil {
		h.logger.ErrorContext(ctx, "Failed to store dispatch id on sale",
			"sale_id", s.ID(), "dispatch_id", confirmation.DispatchID, "error", err)
	}
}

package services

import (
	"context"
	"log/slog"
	"time"

	"sales/internal/core/domain/model/sale"
	"sales/internal/core/ports"
)

// DispatchBufferDays is the fixed shipping time added on top of the longest
// fabrication lead time when a sale contains manufacturing items.
const DispatchBufferDays = 3

// FulfillmentInfo is the outcome of fulfillment planning for a set of items.
type FulfillmentInfo struct {
	// HasManufacturing is true when at least one item is fabricated on demand.
	HasManufacturing bool

	// ManufacturingDays is the longest fabrication lead time across the
	// manufacturing items, in days. Zero when HasManufacturing is false.
	ManufacturingDays int

	// DeliveryDate is the computed delivery date. For manufacturing sales it
	// is now + ManufacturingDays + DispatchBufferDays; otherwise it is the
	// caller-supplied date, or nil when none was supplied.
	DeliveryDate *time.Time
}

// FulfillmentCalculator determines delivery timing for a sale by querying the
// inventory service for each item's availability type.
//
// Lookup failures never block a sale: an item whose metadata cannot be
// fetched is treated as STOCK and planning continues. Each lookup is
// attempted exactly once, no retries. Manufacturing delivery always implies
// eventual dispatch, so a computed date applies even to nominally PICKUP sales.
type FulfillmentCalculator struct {
	inventory ports.InventoryClient
	logger    *slog.Logger
}

// NewFulfillmentCalculator creates a calculator backed by the given inventory client.
func NewFulfillmentCalculator(inventory ports.InventoryClient, logger *slog.Logger) FulfillmentCalculator {
	return FulfillmentCalculator{
		inventory: inventory,
		logger:    logger.With("component", "fulfillment_calculator"),
	}
}

// Calculate plans fulfillment for the given items.
// requestedDate is an optional caller-supplied delivery date used when no
// item requires fabrication. The now parameter anchors the computed date.
func (c FulfillmentCalculator) Calculate(
	ctx context.Context,
	items []sale.Item,
	requestedDate *time.Time,
	now time.Time,
) FulfillmentInfo {
	info := FulfillmentInfo{}

	for _, item := range items {
		product, err := c.inventory.GetProduct(ctx, item.ProductID())
		if err != nil {
			// Availability-check failure must never block the sale.
			c.logger.WarnContext(ctx, "Inventory lookup failed, treating item as stock",
				"product_id", item.ProductID(), "error", err)
			continue
		}

		if product.AvailabilityType.IsManufacturing() {
			info.HasManufacturing = true
			if product.EstimatedDays > info.ManufacturingDays {
				info.ManufacturingDays = product.EstimatedDays
			}
		}
	}

	if info.HasManufacturing {
		deliveryDate := now.AddDate(0, 0, info.ManufacturingDays+DispatchBufferDays)
		info.DeliveryDate = &deliveryDate
		c.logger.InfoContext(ctx, "Manufacturing items detected",
			"manufacturing_days", info.ManufacturingDays,
			"total_days", info.ManufacturingDays+DispatchBufferDays)
		return info
	}

	info.DeliveryDate = requestedDate
	return info
}

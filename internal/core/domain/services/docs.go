// Package services contains domain services that coordinate behavior across
// aggregates and external contracts.
//
// FulfillmentCalculator plans delivery timing for a sale: it classifies each
// item through the inventory service, accumulates the longest fabrication
// lead time, and adds a fixed dispatch buffer when any item requires
// manufacturing. Inventory lookup failures degrade the affected item to
// stock-like behavior instead of blocking the sale.
package services

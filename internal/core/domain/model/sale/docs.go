// Package sale provides domain entities and business logic for retail sales.
// It implements the Sale aggregate root with lifecycle management and state
// transitions.
//
// The package includes:
//   - Sale: The aggregate root owning line items, total, and lifecycle state
//   - Item: An immutable line item capturing quantity and unit price at creation
//   - Status: A state machine enforcing the PENDING -> COMPLETED transition
//   - DeliveryMethod: PICKUP or DISPATCH fulfillment
//
// Key business rules:
//   - The total is the sum of quantity x unit price over the items, fixed at creation
//   - Pending sales carry an expiration deadline (PendingTTL); completed sales never do
//   - Expired pending sales cannot be completed; they are removed by the cleanup sweep
//   - Line items are immutable; the only mutations are completing the sale and
//     attaching an external dispatch identifier
package sale

package ports

import (
	"context"
	"time"
)

// DeliveryAvailability is the dispatch service's answer to an address check.
type DeliveryAvailability struct {
	Available             bool
	EstimatedDeliveryDate time.Time
	DeliveryDays          int
	Zone                  string
	Cost                  float64
}

// DispatchItem is a line item forwarded to the dispatch service.
type DispatchItem struct {
	ProductID   string
	Description string
	Quantity    int
}

// DispatchRequest carries everything the dispatch service needs to create a
// dispatch order for a completed sale.
type DispatchRequest struct {
	SaleID        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	DeliveryDate  time.Time
	Items         []DispatchItem
}

// DispatchConfirmation is the dispatch service's acknowledgment of a created
// dispatch order.
type DispatchConfirmation struct {
	DispatchID            string
	Status                string
	EstimatedDeliveryDate time.Time
}

// DispatchClient is the outbound contract to the external dispatch service.
//
// CheckAvailability never fails the caller's request: the adapter falls back
// to a fixed estimate when the service is unreachable. CreateDispatch fails
// hard when the backend is down; the orchestrator catches the error, keeps
// the sale without a dispatch identifier, and logs the failure. No dispatch
// identifier is ever fabricated, and the service exposes no way to query a
// dispatch after creation.
type DispatchClient interface {
	// CheckAvailability asks whether home delivery reaches the address.
	CheckAvailability(ctx context.Context, address string) (DeliveryAvailability, error)

	// CreateDispatch creates a dispatch order for a confirmed sale.
	CreateDispatch(ctx context.Context, req DispatchRequest) (DispatchConfirmation, error)
}

// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/guard"
)

var ErrGetAllSalesQueryIsNotConstructed = errors.New(
	"GetAllSalesQuery must be created via NewGetAllSalesQuery constructor",
)

// GetAllSalesQuery retrieves every sale together with its line items and a
// summary of the buying customer.
//
// Example:
//
//	query := NewGetAllSalesQuery()
//	handler := NewGetAllSalesQueryHandler(db)
//
//	sales, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve sales: %w", err)
//	}
//
//	for _, s := range sales {
//	    fmt.Printf("sale %s: %s, total %.2f\n", s.ID, s.Status, s.Total)
//	}
type GetAllSalesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllSalesQuery creates a query to retrieve all sales.
// This is a parameterless query that fetches the complete sale list.
func NewGetAllSalesQuery() GetAllSalesQuery {
	return GetAllSalesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllSalesQueryIsNotConstructed if validation fails.
func (q GetAllSalesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllSalesQueryIsNotConstructed)
}

// SaleItemResponse represents one sale line item in the read model.
type SaleItemResponse struct {
	ProductID string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// SaleCustomerResponse summarizes the buying customer in the read model.
type SaleCustomerResponse struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// GetAllSalesQueryResponse represents one sale in the read model.
type GetAllSalesQueryResponse struct {
	ID             kernel.UUID
	Customer       SaleCustomerResponse
	Items          []SaleItemResponse
	Total          float64
	DeliveryMethod string
	Status         string
	ExpiresAt      *time.Time
	DeliveryDate   *time.Time
	DispatchID     *string
	CreatedAt      time.Time
}

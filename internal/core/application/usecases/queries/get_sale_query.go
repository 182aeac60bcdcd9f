package queries

import (
	"errors"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/guard"
)

var ErrGetSaleQueryIsNotConstructed = errors.New(
	"GetSaleQuery must be created via NewGetSaleQuery constructor",
)

// GetSaleQuery retrieves a single sale with its line items and customer summary.
//
// Example:
//
//	query, err := NewGetSaleQuery(saleID)
//	if err != nil {
//	    return err
//	}
//	saleResp, err := NewGetSaleQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown sale id
//	}
type GetSaleQuery struct { //nolint:recvcheck //using for validation
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSaleQuery creates a query to retrieve the sale with the given id.
func NewGetSaleQuery(saleID kernel.UUID) (GetSaleQuery, error) {
	saleQuery := GetSaleQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := saleQuery.setSaleID(saleID); err != nil {
		return GetSaleQuery{}, err
	}

	return saleQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSaleQueryIsNotConstructed if validation fails.
func (q GetSaleQuery) Validate() error {
	return q.guard.Validate(ErrGetSaleQueryIsNotConstructed)
}

// SaleID returns the identifier of the sale to fetch.
func (q GetSaleQuery) SaleID() kernel.UUID {
	return q.saleID
}

func (q *GetSaleQuery) setSaleID(saleID kernel.UUID) error {
	if err := saleID.Validate(); err != nil {
		return err
	}

	q.saleID = saleID
	return nil
}

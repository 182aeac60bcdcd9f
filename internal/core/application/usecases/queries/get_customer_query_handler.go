package queries

import (
	"context"

	"sales/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCustomerQueryHandler retrieves a single customer from the database.
type GetCustomerQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerQueryHandler creates a handler for single-customer retrieval.
// Requires a GORM database connection for query execution.
func NewGetCustomerQueryHandler(db *gorm.DB) GetCustomerQueryHandler {
	return GetCustomerQueryHandler{db: db}
}

// Handle executes the query to retrieve one customer.
// Returns an ObjectNotFoundError when no customer has the given id.
func (h GetCustomerQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerQuery,
) (GetAllCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllCustomersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			address,
			phone,
			document_number,
			created_at
		FROM customers
		WHERE id = ?
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return GetAllCustomersQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetAllCustomersQueryResponse{}, err
		}
		return GetAllCustomersQueryResponse{}, errs.NewObjectNotFoundError("customerId", query.CustomerID())
	}

	return scanCustomerRow(rows)
}

package queries

import (
	"context"
	"database/sql"

	"sales/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCustomersQueryHandler retrieves all customers from the database.
type GetAllCustomersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCustomersQueryHandler creates a handler for customer list queries.
// Requires a GORM database connection for query execution.
func NewGetAllCustomersQueryHandler(db *gorm.DB) GetAllCustomersQueryHandler {
	return GetAllCustomersQueryHandler{db: db}
}

// Handle executes the query to retrieve all customers sorted by name.
func (h GetAllCustomersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCustomersQuery,
) ([]GetAllCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers := make([]GetAllCustomersQueryResponse, 0)

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
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		customer, scanErr := scanCustomerRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

// scanCustomerRow maps one customer row into the read model.
func scanCustomerRow(rows *sql.Rows) (GetAllCustomersQueryResponse, error) {
	var customer GetAllCustomersQueryResponse
	var id uuid.UUID
	var phone, documentNumber sql.NullString

	if err := rows.Scan(
		&id,
		&customer.Name,
		&customer.Email,
		&customer.Address,
		&phone,
		&documentNumber,
		&customer.CreatedAt,
	); err != nil {
		return GetAllCustomersQueryResponse{}, err
	}

	customerID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAllCustomersQueryResponse{}, err
	}
	customer.ID = customerID

	if phone.Valid {
		customer.Phone = &phone.String
	}
	if documentNumber.Valid {
		customer.DocumentNumber = &documentNumber.String
	}

	return customer, nil
}

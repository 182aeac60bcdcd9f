package queries

import (
	"context"
	"database/sql"

	"sales/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllSalesQueryHandler retrieves all sales from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetAllSalesQueryHandler(db)
//	query := NewGetAllSalesQuery()
//
//	sales, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get sales: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d sales\n", len(sales))
type GetAllSalesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllSalesQueryHandler creates a handler for sale retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAllSalesQueryHandler(db *gorm.DB) GetAllSalesQueryHandler {
	return GetAllSalesQueryHandler{db: db}
}

// Handle executes the query to retrieve all sales, newest first.
// Line items are fetched in a second query and grouped per sale.
func (h GetAllSalesQueryHandler) Handle(
	ctx context.Context,
	query GetAllSalesQuery,
) ([]GetAllSalesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sales := make([]GetAllSalesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.total,
			s.delivery_method,
			s.status,
			s.expires_at,
			s.delivery_date,
			s.dispatch_id,
			s.created_at,
			c.id,
			c.name,
			c.email
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		saleResp, scanErr := scanSaleRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sales = append(sales, saleResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	items, err := h.loadItems(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sales {
		sales[i].Items = items[sales[i].ID.String()]
	}

	return sales, nil
}

// scanSaleRow maps one joined sale+customer row into the read model.
func scanSaleRow(rows *sql.Rows) (GetAllSalesQueryResponse, error) {
	var saleResp GetAllSalesQueryResponse
	var saleID, customerID uuid.UUID
	var expiresAt, deliveryDate sql.NullTime
	var dispatchID sql.NullString

	if err := rows.Scan(
		&saleID,
		&saleResp.Total,
		&saleResp.DeliveryMethod,
		&saleResp.Status,
		&expiresAt,
		&deliveryDate,
		&dispatchID,
		&saleResp.CreatedAt,
		&customerID,
		&saleResp.Customer.Name,
		&saleResp.Customer.Email,
	); err != nil {
		return GetAllSalesQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(saleID[:])
	if err != nil {
		return GetAllSalesQueryResponse{}, err
	}
	saleResp.ID = id

	buyerID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetAllSalesQueryResponse{}, err
	}
	saleResp.Customer.ID = buyerID

	if expiresAt.Valid {
		saleResp.ExpiresAt = &expiresAt.Time
	}
	if deliveryDate.Valid {
		saleResp.DeliveryDate = &deliveryDate.Time
	}
	if dispatchID.Valid {
		saleResp.DispatchID = &dispatchID.String
	}

	return saleResp, nil
}

// loadItems fetches every line item and groups them by sale id.
func (h GetAllSalesQueryHandler) loadItems(ctx context.Context) (map[string][]SaleItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sale_id,
			product_id,
			quantity,
			unit_price
		FROM sale_items
		ORDER BY sale_id, product_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]SaleItemResponse)
	for rows.Next() {
		var saleID uuid.UUID
		var item SaleItemResponse

		if err = rows.Scan(&saleID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		items[saleID.String()] = append(items[saleID.String()], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

package queries

import (
	"context"

	"sales/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSaleQueryHandler retrieves a single sale from the database.
type GetSaleQueryHandler struct {
	db *gorm.DB
}

// NewGetSaleQueryHandler creates a handler for single-sale retrieval.
// Requires a GORM database connection for query execution.
func NewGetSaleQueryHandler(db *gorm.DB) GetSaleQueryHandler {
	return GetSaleQueryHandler{db: db}
}

// Handle executes the query to retrieve one sale with its line items.
// Returns an ObjectNotFoundError when no sale has the given id.
func (h GetSaleQueryHandler) Handle(
	ctx context.Context,
	query GetSaleQuery,
) (GetAllSalesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllSalesQueryResponse{}, err
	}

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
		WHERE s.id = ?
	`, query.SaleID().String()).Rows()
	if err != nil {
		return GetAllSalesQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetAllSalesQueryResponse{}, err
		}
		return GetAllSalesQueryResponse{}, errs.NewObjectNotFoundError("saleId", query.SaleID())
	}

	saleResp, err := scanSaleRow(rows)
	if err != nil {
		return GetAllSalesQueryResponse{}, err
	}

	items, err := h.loadSaleItems(ctx, query.SaleID().String())
	if err != nil {
		return GetAllSalesQueryResponse{}, err
	}
	saleResp.Items = items

	return saleResp, nil
}

func (h GetSaleQueryHandler) loadSaleItems(ctx context.Context, saleID string) ([]SaleItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sale_id,
			product_id,
			quantity,
			unit_price
		FROM sale_items
		WHERE sale_id = ?
		ORDER BY product_id
	`, saleID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]SaleItemResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		var item SaleItemResponse

		if err = rows.Scan(&id, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

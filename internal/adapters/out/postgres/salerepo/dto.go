// Package salerepo provides data transfer objects and mapping functions for
// sale persistence. It implements the repository pattern for the sale domain
// aggregate, persisting a sale and its line items as a single unit.
package salerepo

import (
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"

	"github.com/google/uuid"
)

// SaleDTO represents the database structure for persisting sale aggregates.
// The status and expiration indexes serve the expiration cleanup sweep.
type SaleDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index"`
	Items          []ItemDTO `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Total          float64
	DeliveryMethod string
	Status         string     `gorm:"index"`
	ExpiresAt      *time.Time `gorm:"index"`
	DeliveryDate   *time.Time
	DispatchID     *string
	CreatedAt      time.Time
}

// TableName specifies the database table name for sale entities.
// Overrides GORM's default naming convention to use "sales".
func (SaleDTO) TableName() string {
	return "sales"
}

// ItemDTO represents one persisted sale line item.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	Quantity  int
	UnitPrice float64
}

// TableName specifies the database table name for sale line items.
func (ItemDTO) TableName() string {
	return "sale_items"
}

// fromDomain converts a sale domain aggregate to its database representation.
// Line items get fresh surrogate ids on every conversion; they are only
// written on Add, updates never touch the items table.
func fromDomain(aggregate *sale.Sale) SaleDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        uuid.New(),
			SaleID:    aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return SaleDTO{
		ID:             aggregate.ID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		Items:          items,
		Total:          aggregate.Total(),
		DeliveryMethod: aggregate.DeliveryMethod().String(),
		Status:         aggregate.Status().String(),
		ExpiresAt:      aggregate.ExpiresAt(),
		DeliveryDate:   aggregate.DeliveryDate(),
		DispatchID:     aggregate.DispatchID(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a sale domain aggregate.
func toDomain(dto SaleDTO) (*sale.Sale, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]sale.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := sale.NewItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	deliveryMethod, err := sale.DeliveryMethodFromString(dto.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	status, err := sale.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return sale.RestoreSale(
		id,
		customerID,
		items,
		dto.Total,
		deliveryMethod,
		status,
		dto.ExpiresAt,
		dto.DeliveryDate,
		dto.DispatchID,
		dto.CreatedAt,
	)
}

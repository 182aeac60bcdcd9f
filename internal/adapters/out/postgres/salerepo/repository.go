package salerepo

import (
	"context"
	"errors"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM.
type GormSaleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSaleRepository creates a new GORM sale repository.
func NewGormSaleRepository(db *gorm.DB, tracker aggregateTracker) *GormSaleRepository {
	return &GormSaleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new sale and its line items to the database.
// GORM writes the items association in the same statement batch, so within a
// transaction the sale and its items land atomically.
func (r *GormSaleRepository) Add(ctx context.Context, aggregate *sale.Sale) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing sale to the database. Only the mutable sale
// columns are written; line items are immutable after creation. The column
// list is explicit because clearing expires_at on completion must write NULL.
func (r *GormSaleRepository) Update(ctx context.Context, aggregate *sale.Sale) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SaleDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "expires_at", "delivery_date", "dispatch_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a sale by ID, including its line items.
func (r *GormSaleRepository) Get(ctx context.Context, id kernel.UUID) (*sale.Sale, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SaleDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sale", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllExpired retrieves every pending sale whose expiration deadline is at
// or before the given instant.
func (r *GormSaleRepository) GetAllExpired(ctx context.Context, now time.Time) ([]*sale.Sale, error) {
	var dtos []SaleDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&dtos, "status = ? AND expires_at <= ?", sale.StatusPending.String(), now).
		Error
	if err != nil {
		return nil, err
	}

	sales := make([]*sale.Sale, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		sales = append(sales, s)
	}

	return sales, nil
}

// Delete removes a sale and its line items.
// Items are deleted explicitly rather than relying on the database cascade.
func (r *GormSaleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("sale_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&SaleDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sale", id.String())
	}

	return nil
}

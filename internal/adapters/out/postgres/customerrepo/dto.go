// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence. It implements the repository pattern for the
// customer domain aggregate, handling the conversion between domain entities
// and database representations.
package customerrepo

import (
	"time"

	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer aggregates.
// The unique index on email is what makes find-or-create resolution race-safe.
type CustomerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Email          string `gorm:"uniqueIndex"`
	Address        string
	Phone          *string
	DocumentNumber *string
	CreatedAt      time.Time
}

// TableName specifies the database table name for customer entities.
// Overrides GORM's default naming convention to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// fromDomain converts a customer domain aggregate to its database representation.
func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Email:          aggregate.Email().String(),
		Address:        aggregate.Address().String(),
		Phone:          aggregate.Phone(),
		DocumentNumber: aggregate.DocumentNumber(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a customer domain aggregate.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, email, address, dto.Phone, dto.DocumentNumber, dto.CreatedAt)
}

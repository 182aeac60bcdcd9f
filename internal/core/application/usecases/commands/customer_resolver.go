package commands

import (
	"context"
	"errors"
	"time"

	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/ports"
	"sales/internal/pkg/errs"
)

// ResolveCustomerData carries the customer details supplied with a sale.
type ResolveCustomerData struct {
	Name           string
	Email          kernel.Email
	Address        kernel.Address
	Phone          *string
	DocumentNumber *string
}

// CustomerResolver implements find-or-create semantics for customers keyed by
// email. Sale creation never mutates an existing customer: when the email is
// already on file, the stored record wins and the submitted details are
// discarded.
type CustomerResolver struct{}

// NewCustomerResolver creates a resolver.
func NewCustomerResolver() CustomerResolver {
	return CustomerResolver{}
}

// Resolve returns the customer for the given email, creating one when none
// exists. A unique-constraint collision on create means a concurrent request
// won the race; the resolver then fetches and returns the winner's record.
func (CustomerResolver) Resolve(
	ctx context.Context,
	repo ports.CustomerRepository,
	data ResolveCustomerData,
	now time.Time,
) (*customer.Customer, error) {
	existing, err := repo.GetByEmail(ctx, data.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := customer.NewCustomer(
		kernel.NewUUID(),
		data.Name,
		data.Email,
		data.Address,
		data.Phone,
		data.DocumentNumber,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, created); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return repo.GetByEmail(ctx, data.Email)
		}
		return nil, err
	}

	return created, nil
}

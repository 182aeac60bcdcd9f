package sale

import (
	"errors"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/pkg/errs"
)

// PendingTTL is how long a pending sale holds its reservation before the
// cleanup sweep may remove it.
const PendingTTL = 15 * time.Minute

var (
	// ErrSaleIsNotConstructed is returned when a Sale instance was not created through
	// the NewSale or RestoreSale factory methods.
	ErrSaleIsNotConstructed = errors.New("Sale must be created via NewSale or RestoreSale")

	// ErrSaleNotPending indicates an operation that requires a pending sale
	// was attempted on a sale in another status.
	ErrSaleNotPending = errors.New("sale is not pending")

	// ErrSaleExpired indicates a pending sale's reservation window has passed.
	ErrSaleExpired = errors.New("sale has expired")
)

// Sale is the aggregate root for a retail purchase transaction. It owns an
// ordered list of line items, references exactly one customer, and tracks the
// fulfillment lifecycle (status, expiration, dispatch identifier).
//
// Sale maintains these invariants:
//   - total == sum of quantity x unit price over the line items, fixed at creation
//   - expiresAt is non-nil iff status == PENDING
//   - line items are immutable once the sale is created
//   - the only mutations are the PENDING -> COMPLETED transition and
//     attaching a dispatch identifier
type Sale struct {
	id             kernel.UUID
	customerID     kernel.UUID
	items          []Item
	total          float64
	deliveryMethod DeliveryMethod
	status         Status
	expiresAt      *time.Time
	deliveryDate   *time.Time
	dispatchID     *string
	createdAt      time.Time

	isConstructed bool
}

// NewSale creates a new Sale with validation. The total is computed from the
// items, and pending sales get an expiration deadline of now + PendingTTL.
//
// Parameters:
//   - id: unique identifier for the sale
//   - customerID: the owning customer's identifier
//   - items: at least one validated line item
//   - deliveryMethod: PICKUP or DISPATCH
//   - status: PENDING or COMPLETED
//   - deliveryDate: optional computed or caller-supplied delivery date
//   - now: creation instant, injected for testability
func NewSale(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	deliveryMethod DeliveryMethod,
	status Status,
	deliveryDate *time.Time,
	now time.Time,
) (*Sale, error) {
	s := &Sale{
		isConstructed: true,
		createdAt:     now,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCustomerID(customerID),
		s.setItems(items),
		s.setDeliveryMethod(deliveryMethod),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	s.total = totalOf(s.items)
	s.deliveryDate = deliveryDate

	if status == StatusPending {
		expiresAt := now.Add(PendingTTL)
		s.expiresAt = &expiresAt
	}

	return s, nil
}

// RestoreSale reconstructs a Sale from persistence without recomputing the
// total or expiration. It still enforces the structural invariants, including
// that expiresAt is present exactly for pending sales.
func RestoreSale(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	total float64,
	deliveryMethod DeliveryMethod,
	status Status,
	expiresAt *time.Time,
	deliveryDate *time.Time,
	dispatchID *string,
	createdAt time.Time,
) (*Sale, error) {
	s := &Sale{
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCustomerID(customerID),
		s.setItems(items),
		s.setDeliveryMethod(deliveryMethod),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	if (status == StatusPending) != (expiresAt != nil) {
		return nil, errs.NewValueIsInvalidError("expiresAt must be set exactly for pending sales")
	}

	s.total = total
	s.expiresAt = expiresAt
	s.deliveryDate = deliveryDate
	s.dispatchID = dispatchID

	return s, nil
}

// Validate ensures the Sale instance was properly constructed through a factory.
func (s *Sale) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSaleIsNotConstructed
	}

	return nil
}

// IsEqual compares two sales by their unique identifiers.
func (s *Sale) IsEqual(other *Sale) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the sale's unique identifier.
func (s *Sale) ID() kernel.UUID {
	return s.id
}

// CustomerID returns the owning customer's identifier.
func (s *Sale) CustomerID() kernel.UUID {
	return s.customerID
}

// Items returns a copy of the ordered line items.
func (s *Sale) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Total returns the sale total computed at creation time.
func (s *Sale) Total() float64 {
	return s.total
}

// DeliveryMethod returns the fulfillment method of the sale.
func (s *Sale) DeliveryMethod() DeliveryMethod {
	return s.deliveryMethod
}

// Status returns the current lifecycle status.
func (s *Sale) Status() Status {
	return s.status
}

// ExpiresAt returns the reservation deadline for pending sales, nil otherwise.
func (s *Sale) ExpiresAt() *time.Time {
	return s.expiresAt
}

// DeliveryDate returns the computed or caller-supplied delivery date, if any.
func (s *Sale) DeliveryDate() *time.Time {
	return s.deliveryDate
}

// DispatchID returns the external dispatch identifier, if a dispatch was
// created for this sale. Nil means no dispatch exists or its creation failed.
func (s *Sale) DispatchID() *string {
	return s.dispatchID
}

// CreatedAt returns the creation instant of the sale.
func (s *Sale) CreatedAt() time.Time {
	return s.createdAt
}

// IsExpired reports whether a pending sale's reservation window has passed.
// Completed sales are never expired.
func (s *Sale) IsExpired(now time.Time) bool {
	return s.status == StatusPending && s.expiresAt != nil && now.After(*s.expiresAt)
}

// Complete transitions the sale from PENDING to COMPLETED and clears the
// expiration deadline.
//
// Returns:
//   - ErrSaleNotPending (wrapped) if the sale is not pending
//   - ErrSaleExpired (wrapped) if the reservation window has passed
func (s *Sale) Complete(now time.Time) error {
	if s.status != StatusPending {
		return errs.NewStateConflictErrorWithCause("complete", s.status.String(), ErrSaleNotPending)
	}

	if s.IsExpired(now) {
		return errs.NewStateConflictErrorWithCause("complete", s.status.String(), ErrSaleExpired)
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.expiresAt = nil
	return nil
}

// AttachDispatchID records the identifier returned by the dispatch service
// after a dispatch order was successfully created.
func (s *Sale) AttachDispatchID(dispatchID string) error {
	if dispatchID == "" {
		return errs.NewValueIsRequiredError("dispatchId")
	}

	s.dispatchID = &dispatchID
	return nil
}

func (s *Sale) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Sale) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	s.customerID = customerID
	return nil
}

func (s *Sale) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	s.items = make([]Item, len(items))
	copy(s.items, items)
	return nil
}

func (s *Sale) setDeliveryMethod(method DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	s.deliveryMethod = method
	return nil
}

func (s *Sale) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func totalOf(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

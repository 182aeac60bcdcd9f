package commands

import (
	"errors"
	"time"

	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/pkg/errs"
	"sales/internal/pkg/guard"
)

var ErrCreateSaleCommandIsNotConstructed = errors.New(
	"CreateSaleCommand must be created via NewCreateSaleCommand constructor",
)

// CustomerInput carries the raw customer details submitted with a sale.
// Name, email, and address are required; phone and document number are optional.
type CustomerInput struct {
	Name           string
	Email          string
	Address        string
	Phone          *string
	DocumentNumber *string
}

// ItemInput carries a raw sale line item before domain validation.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// CreateSaleCommand represents a request to register a new sale, covering
// both immediate purchases (COMPLETED) and reservations (PENDING).
// All field validation happens in the constructor, so a constructed command
// carries only valid domain values.
//
// Example:
//
//	cmd, err := NewCreateSaleCommand(
//	    CustomerInput{Name: "Ada Lovelace", Email: "ada@example.com", Address: "12 Main St"},
//	    []ItemInput{{ProductID: "prod-chair", Quantity: 2, UnitPrice: 49.90}},
//	    "PICKUP", "COMPLETED", nil,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid sale data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateSaleCommand struct { //nolint:recvcheck //using for validation
	customerName     string
	customerEmail    kernel.Email
	customerAddress  kernel.Address
	customerPhone    *string
	customerDocument *string
	items            []sale.Item
	deliveryMethod   sale.DeliveryMethod
	status           sale.Status
	deliveryDate     *time.Time

	guard guard.ConstructorGuard
}

// NewCreateSaleCommand creates a command to register a new sale.
// The status string defaults to COMPLETED when empty; the delivery method is
// required. deliveryDate is the optional caller-requested delivery date.
// Returns a joined error listing every failed field validation.
func NewCreateSaleCommand(
	customerInput CustomerInput,
	items []ItemInput,
	deliveryMethod string,
	status string,
	deliveryDate *time.Time,
) (CreateSaleCommand, error) {
	saleCommand := CreateSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		saleCommand.setCustomer(customerInput),
		saleCommand.setItems(items),
		saleCommand.setDeliveryMethod(deliveryMethod),
		saleCommand.setStatus(status),
	); err != nil {
		return CreateSaleCommand{}, err
	}

	saleCommand.deliveryDate = deliveryDate

	return saleCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateSaleCommandIsNotConstructed if validation fails.
func (c CreateSaleCommand) Validate() error {
	return c.guard.Validate(ErrCreateSaleCommandIsNotConstructed)
}

// Customer returns the validated customer details as resolver input.
func (c CreateSaleCommand) Customer() ResolveCustomerData {
	return ResolveCustomerData{
		Name:           c.customerName,
		Email:          c.customerEmail,
		Address:        c.customerAddress,
		Phone:          c.customerPhone,
		DocumentNumber: c.customerDocument,
	}
}

// Items returns the validated sale line items.
func (c CreateSaleCommand) Items() []sale.Item {
	return c.items
}

// DeliveryMethod returns how the customer receives the goods.
func (c CreateSaleCommand) DeliveryMethod() sale.DeliveryMethod {
	return c.deliveryMethod
}

// Status returns the initial sale status.
func (c CreateSaleCommand) Status() sale.Status {
	return c.status
}

// DeliveryDate returns the optional caller-requested delivery date.
func (c CreateSaleCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *CreateSaleCommand) setCustomer(input CustomerInput) error {
	email, emailErr := kernel.NewEmail(input.Email)
	address, addressErr := kernel.NewAddress(input.Address)

	var nameErr error
	if input.Name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(nameErr, emailErr, addressErr); err != nil {
		return err
	}

	c.customerName = input.Name
	c.customerEmail = email
	c.customerAddress = address
	c.customerPhone = input.Phone
	c.customerDocument = input.DocumentNumber
	return nil
}

func (c *CreateSaleCommand) setItems(inputs []ItemInput) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]sale.Item, 0, len(inputs))
	var itemErrs []error
	for _, input := range inputs {
		item, err := sale.NewItem(input.ProductID, input.Quantity, input.UnitPrice)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateSaleCommand) setDeliveryMethod(method string) error {
	deliveryMethod, err := sale.DeliveryMethodFromString(method)
	if err != nil {
		return err
	}

	c.deliveryMethod = deliveryMethod
	return nil
}

func (c *CreateSaleCommand) setStatus(status string) error {
	saleStatus, err := sale.StatusFromString(status)
	if err != nil {
		return err
	}

	c.status = saleStatus
	return nil
}

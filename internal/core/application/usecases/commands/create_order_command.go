package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// CreateOrderCommand represents a request to register a new customer order.
// Encapsulates the order identity, the ordering customer and the line items.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, items, staff.Sales)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created in status %s", orderID, created.Status())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []order.LineItem
	actorRole  staff.Role

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new customer order.
// Validates that order and customer identifiers are valid, at least one line
// item is present, and the acting role is known.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	items []order.LineItem,
	actorRole staff.Role,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
		orderCommand.setActorRole(actorRole),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns a copy of the requested line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// ActorRole returns the role of the caller registering the order.
func (c CreateOrderCommand) ActorRole() staff.Role {
	return c.actorRole
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setActorRole(actorRole staff.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

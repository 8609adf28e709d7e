package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAdjustPackingQuantityCommandIsNotConstructed = errors.New(
		"AdjustPackingQuantityCommand must be created via NewAdjustPackingQuantityCommand constructor",
	)

	// ErrRoleCannotAdjustPacking is returned when a role outside the warehouse
	// set requests a packing quantity adjustment.
	ErrRoleCannotAdjustPacking = errors.New("role cannot adjust packing quantities")
)

// AdjustPackingQuantityCommand represents a packer recording the physically
// packed quantity of one line item. Besides changing the item, handling the
// command counts as packing activity: it pushes the session's staleness
// deadline forward, keeping actively worked orders out of the timeout sweep.
type AdjustPackingQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemID    kernel.UUID
	quantity  float64
	actorRole staff.Role

	guard guard.ConstructorGuard
}

// NewAdjustPackingQuantityCommand creates a command to adjust a packed
// quantity. Validates the identifiers, requires a positive quantity and
// restricts the operation to the warehouse roles (admin, manager, packer).
func NewAdjustPackingQuantityCommand(
	orderID, itemID kernel.UUID,
	quantity float64,
	actorRole staff.Role,
) (AdjustPackingQuantityCommand, error) {
	adjustCommand := AdjustPackingQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		adjustCommand.setOrderID(orderID),
		adjustCommand.setItemID(itemID),
		adjustCommand.setQuantity(quantity),
		adjustCommand.setActorRole(actorRole),
	); err != nil {
		return AdjustPackingQuantityCommand{}, err
	}

	return adjustCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdjustPackingQuantityCommandIsNotConstructed if validation fails.
func (c AdjustPackingQuantityCommand) Validate() error {
	return c.guard.Validate(ErrAdjustPackingQuantityCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being packed.
func (c AdjustPackingQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the line item to adjust.
func (c AdjustPackingQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the physically packed quantity.
func (c AdjustPackingQuantityCommand) Quantity() float64 {
	return c.quantity
}

// ActorRole returns the role requesting the adjustment.
func (c AdjustPackingQuantityCommand) ActorRole() staff.Role {
	return c.actorRole
}

func (c *AdjustPackingQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdjustPackingQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AdjustPackingQuantityCommand) setQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is not greater than 0", quantity),
		)
	}

	c.quantity = quantity
	return nil
}

func (c *AdjustPackingQuantityCommand) setActorRole(actorRole staff.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	switch actorRole {
	case staff.Admin, staff.Manager, staff.Packer:
	default:
		return ErrRoleCannotAdjustPacking
	}

	c.actorRole = actorRole
	return nil
}

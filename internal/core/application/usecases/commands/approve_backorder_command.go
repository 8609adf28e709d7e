package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveBackorderCommandIsNotConstructed = errors.New(
	"ApproveBackorderCommand must be created via NewApproveBackorderCommand constructor",
)

// ApproveBackorderCommand represents a decision on an order awaiting backorder
// approval. The listed items keep their approval, all others are dropped from
// fulfilment and charging. An empty list rejects the whole backorder.
type ApproveBackorderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	approvedItemIDs []kernel.UUID
	actorRole       staff.Role

	guard guard.ConstructorGuard
}

// NewApproveBackorderCommand creates a command to resolve a pending backorder.
// Validates the order identifier, every listed item identifier and the acting
// role. An empty approved list is valid and means full rejection.
func NewApproveBackorderCommand(
	orderID kernel.UUID,
	approvedItemIDs []kernel.UUID,
	actorRole staff.Role,
) (ApproveBackorderCommand, error) {
	approveCommand := ApproveBackorderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		approveCommand.setOrderID(orderID),
		approveCommand.setApprovedItemIDs(approvedItemIDs),
		approveCommand.setActorRole(actorRole),
	); err != nil {
		return ApproveBackorderCommand{}, err
	}

	return approveCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApproveBackorderCommandIsNotConstructed if validation fails.
func (c ApproveBackorderCommand) Validate() error {
	return c.guard.Validate(ErrApproveBackorderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under approval.
func (c ApproveBackorderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ApprovedItemIDs returns a copy of the approved line item identifiers.
func (c ApproveBackorderCommand) ApprovedItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.approvedItemIDs))
	copy(ids, c.approvedItemIDs)
	return ids
}

// ActorRole returns the role taking the approval decision.
func (c ApproveBackorderCommand) ActorRole() staff.Role {
	return c.actorRole
}

func (c *ApproveBackorderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveBackorderCommand) setApprovedItemIDs(approvedItemIDs []kernel.UUID) error {
	for _, id := range approvedItemIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.approvedItemIDs = make([]kernel.UUID, len(approvedItemIDs))
	copy(c.approvedItemIDs, approvedItemIDs)
	return nil
}

func (c *ApproveBackorderCommand) setActorRole(actorRole staff.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

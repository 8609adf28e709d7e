package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)

	// ErrPackerIsRequired is returned when a transition into Packing does not
	// name the packer who will own the packing session.
	ErrPackerIsRequired = errors.New("packer id is required to start packing")

	// ErrCrossDayPacking flags an order whose packing session started on an
	// earlier day than its completion. Soft by design: the caller repeats the
	// request with AllowCrossDayPacking or AdminOverride to push it through.
	ErrCrossDayPacking = errors.New(
		"packing session started on an earlier day; confirm cross-day packing to complete",
	)
)

// TransitionOptions carries the optional modifiers of a transition request.
//
// PackerID is required when the target status is Packing and ignored
// otherwise. AdminOverride and AllowCrossDayPacking suppress the soft
// cross-day packing check only; they never bypass authorization, stock or
// credit failures.
type TransitionOptions struct {
	PackerID             *kernel.UUID
	AdminOverride        bool
	AllowCrossDayPacking bool
}

// TransitionOrderCommand represents a request to move an order to a target
// lifecycle status on behalf of an acting role. Every status change in the
// system is expressed as this command, whether a human asked for it over the
// API or the packing timeout sweep reverts a stale order.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorRole staff.Role
	opts      TransitionOptions

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Validates the order identifier, the target status, the acting role and the
// packer identifier when one is supplied.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actorRole staff.Role,
	opts TransitionOptions,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setActorRole(actorRole),
		transitionCommand.setOptions(opts),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// ActorRole returns the role driving the transition.
func (c TransitionOrderCommand) ActorRole() staff.Role {
	return c.actorRole
}

// PackerID returns the packer for a transition into Packing, or nil.
func (c TransitionOrderCommand) PackerID() *kernel.UUID {
	return c.opts.PackerID
}

// AdminOverride reports whether an administrator override accompanies the
// request.
func (c TransitionOrderCommand) AdminOverride() bool {
	return c.opts.AdminOverride
}

// AllowCrossDayPacking reports whether the caller explicitly confirmed
// completing a packing session started on an earlier day.
func (c TransitionOrderCommand) AllowCrossDayPacking() bool {
	return c.opts.AllowCrossDayPacking
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActorRole(actorRole staff.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

func (c *TransitionOrderCommand) setOptions(opts TransitionOptions) error {
	if c.target == order.Packing && opts.PackerID == nil {
		return ErrPackerIsRequired
	}
	if opts.PackerID != nil {
		if err := opts.PackerID.Validate(); err != nil {
			return err
		}
	}

	c.opts = opts
	return nil
}

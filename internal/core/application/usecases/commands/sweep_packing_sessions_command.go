package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSweepPackingSessionsCommandIsNotConstructed = errors.New(
	"SweepPackingSessionsCommand must be created via NewSweepPackingSessionsCommand constructor",
)

// SweepPackingSessionsCommand represents a request to revert every order
// whose packing session went stale. Carries no parameters; the staleness
// threshold is handler configuration.
type SweepPackingSessionsCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepPackingSessionsCommand creates a command to run the packing
// timeout sweep.
func NewSweepPackingSessionsCommand() SweepPackingSessionsCommand {
	return SweepPackingSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepPackingSessionsCommandIsNotConstructed if validation fails.
func (c SweepPackingSessionsCommand) Validate() error {
	return c.guard.Validate(ErrSweepPackingSessionsCommandIsNotConstructed)
}

package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
)

var (
	// ErrNoSuchEdge indicates the requested status pair is not an edge in the
	// transition table. Fatal to the caller; retrying cannot help.
	ErrNoSuchEdge = errors.New("no such transition")

	// ErrRoleNotPermitted indicates the edge exists but the caller's role may
	// not drive it. Fatal to the caller.
	ErrRoleNotPermitted = errors.New("role not permitted for transition")

	// ErrNoOpTransition indicates source and target status are equal.
	// Same-state requests are always rejected so idempotent retries are
	// handled explicitly by callers rather than silently succeeding.
	ErrNoOpTransition = errors.New("transition to same status")
)

// TransitionDeniedError is the typed denial returned by the authorization
// gate. It names the exact edge and role involved and unwraps to one of the
// denial sentinels (ErrNoSuchEdge, ErrRoleNotPermitted, ErrNoOpTransition)
// so callers can classify the failure with errors.Is.
type TransitionDeniedError struct {
	From   order.Status
	To     order.Status
	Role   staff.Role
	Reason error
}

func (e *TransitionDeniedError) Error() string {
	return fmt.Sprintf("transition %s -> %s denied for role %s: %s", e.From, e.To, e.Role, e.Reason)
}

func (e *TransitionDeniedError) Unwrap() error {
	return e.Reason
}

// AuthorizationGate evaluates requested transitions against the transition
// table and the caller's role. It is the single decision point every status
// change passes through, whether requested by a human or by the packing
// timeout sweep.
type AuthorizationGate struct {
	table *TransitionTable
}

// NewAuthorizationGate creates a gate over the given transition table.
func NewAuthorizationGate(table *TransitionTable) *AuthorizationGate {
	return &AuthorizationGate{table: table}
}

// Check returns nil if role may drive the current -> target edge.
// Otherwise it returns a TransitionDeniedError naming the precise reason:
// same-state request, missing edge, or role not in the edge's allowed set.
func (g *AuthorizationGate) Check(current, target order.Status, role staff.Role) error {
	if err := errors.Join(current.Validate(), target.Validate(), role.Validate()); err != nil {
		return err
	}

	if current == target {
		return &TransitionDeniedError{From: current, To: target, Role: role, Reason: ErrNoOpTransition}
	}
	if !g.table.HasEdge(current, target) {
		return &TransitionDeniedError{From: current, To: target, Role: role, Reason: ErrNoSuchEdge}
	}
	if !g.table.RoleAllowed(current, target, role) {
		return &TransitionDeniedError{From: current, To: target, Role: role, Reason: ErrRoleNotPermitted}
	}

	return nil
}

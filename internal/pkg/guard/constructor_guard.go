// Package guard provides a defensive construction marker for value objects,
// commands and entities. Embedding a ConstructorGuard lets a type detect whether
// it was created through its designated constructor or as a zero value, so that
// invariants established during construction cannot be bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor function.
// The zero value fails validation, which is the entire point: a struct literal
// or uninitialized variable is distinguishable from a constructed instance.
//
// Example:
//
//	type Command struct {
//	    payload string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewCommand(payload string) Command {
//	    return Command{payload: payload, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the holder was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

// Package staff provides the staff role value object used to authorize
// order lifecycle transitions. Roles identify the kind of actor driving a
// transition: office staff, warehouse packers, delivery drivers, or the
// system itself for automated recovery.
package staff

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of actor requesting an order transition.
// Every status change, human or automated, carries the role of its caller so
// the authorization gate can validate it against the transition table.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Admin has unrestricted access to every permitted transition.
	Admin

	// Manager approves orders and may drive any operational transition.
	Manager

	// Sales creates orders and cancels them before fulfillment starts.
	Sales

	// Packer fulfils orders in the warehouse: starts packing and marks
	// orders ready for delivery.
	Packer

	// Driver takes orders out for delivery and marks them delivered.
	Driver

	// System is the role of automated processes such as the packing
	// session timeout sweep. It is never granted to a human caller.
	System
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Admin:       "admin",
		Manager:     "manager",
		Sales:       "sales",
		Packer:      "packer",
		Driver:      "driver",
		System:      "system",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Admin:   "admin",
		Manager: "manager",
		Sales:   "sales",
		Packer:  "packer",
		Driver:  "driver",
		System:  "system",
	}
}

// Validate checks if the Role value is valid.
// UnknownRole (0) and any out-of-range values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase wire name of the role, or "Unknown" for
// invalid values. This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses the lowercase wire name of a role as produced by
// String. Used by the transport adapter when translating caller identity
// into an actor role.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
)

type transitionEdge struct {
	from order.Status
	to   order.Status
}

// TransitionTable is the immutable description of the order lifecycle graph:
// which status pairs form valid edges, and which roles may drive each edge.
//
// The table is constructed once at startup and injected wherever transitions
// are validated; there is no package-level instance. Reverting edges (packing
// back to confirmed, ready-for-delivery back to packing, out-for-delivery
// back to ready-for-delivery) are ordinary edges in the same graph and are
// validated identically to forward progress.
type TransitionTable struct {
	edges map[transitionEdge]map[staff.Role]bool
}

// NewTransitionTable builds the standard fulfilment lifecycle table:
//
//	awaiting_approval  -> confirmed (admin, manager), cancelled (admin, manager, sales)
//	confirmed          -> packing (admin, manager, packer), cancelled (admin, manager, sales)
//	packing            -> ready_for_delivery (admin, manager, packer),
//	                      confirmed (admin, manager, packer, system),
//	                      cancelled (admin, manager)
//	ready_for_delivery -> out_for_delivery (admin, manager, driver),
//	                      packing (admin, manager, packer),
//	                      cancelled (admin, manager)
//	out_for_delivery   -> delivered (admin, manager, driver),
//	                      ready_for_delivery (admin, manager, driver),
//	                      cancelled (admin, manager)
//	delivered          -> cancelled (admin, manager)  [credit-note reversal]
//	cancelled          -> (terminal)
//
// The system role appears only on the packing revert edge: it is the path the
// packing-timeout sweep uses, and automated recovery has no business driving
// any other transition.
func NewTransitionTable() *TransitionTable {
	table := &TransitionTable{
		edges: make(map[transitionEdge]map[staff.Role]bool),
	}

	office := []staff.Role{staff.Admin, staff.Manager}
	warehouse := []staff.Role{staff.Admin, staff.Manager, staff.Packer}

	table.addEdge(order.AwaitingApproval, order.Confirmed, office...)
	table.addEdge(order.AwaitingApproval, order.Cancelled, staff.Admin, staff.Manager, staff.Sales)

	table.addEdge(order.Confirmed, order.Packing, warehouse...)
	table.addEdge(order.Confirmed, order.Cancelled, staff.Admin, staff.Manager, staff.Sales)

	table.addEdge(order.Packing, order.ReadyForDelivery, warehouse...)
	table.addEdge(order.Packing, order.Confirmed, staff.Admin, staff.Manager, staff.Packer, staff.System)
	table.addEdge(order.Packing, order.Cancelled, office...)

	table.addEdge(order.ReadyForDelivery, order.OutForDelivery, staff.Admin, staff.Manager, staff.Driver)
	table.addEdge(order.ReadyForDelivery, order.Packing, warehouse...)
	table.addEdge(order.ReadyForDelivery, order.Cancelled, office...)

	table.addEdge(order.OutForDelivery, order.Delivered, staff.Admin, staff.Manager, staff.Driver)
	table.addEdge(order.OutForDelivery, order.ReadyForDelivery, staff.Admin, staff.Manager, staff.Driver)
	table.addEdge(order.OutForDelivery, order.Cancelled, office...)

	table.addEdge(order.Delivered, order.Cancelled, office...)

	return table
}

func (t *TransitionTable) addEdge(from, to order.Status, roles ...staff.Role) {
	roleSet := make(map[staff.Role]bool, len(roles))
	for _, role := range roles {
		roleSet[role] = true
	}
	t.edges[transitionEdge{from: from, to: to}] = roleSet
}

// HasEdge reports whether the status pair forms a valid lifecycle edge.
func (t *TransitionTable) HasEdge(from, to order.Status) bool {
	_, ok := t.edges[transitionEdge{from: from, to: to}]
	return ok
}

// RoleAllowed reports whether role may drive the edge. False when the edge
// does not exist.
func (t *TransitionTable) RoleAllowed(from, to order.Status, role staff.Role) bool {
	roleSet, ok := t.edges[transitionEdge{from: from, to: to}]
	return ok && roleSet[role]
}

// TargetsFrom returns the set of statuses reachable in one step from the
// given status. Used by reachability checks and by read views that surface
// the actions available on an order.
func (t *TransitionTable) TargetsFrom(from order.Status) []order.Status {
	var targets []order.Status
	for edge := range t.edges {
		if edge.from == from {
			targets = append(targets, edge.to)
		}
	}
	return targets
}

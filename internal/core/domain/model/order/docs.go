// Package order provides domain entities and business logic for laundry order
// lifecycle management. It implements the Order aggregate root together with
// the status state machine that governs every transition an order may take
// between placement and delivery.
//
// The package includes:
//   - Status: the closed enumeration of lifecycle states
//   - StatusDescriptor: display metadata plus the declared successor set per status
//   - Order: the aggregate root owning the single mutable status field
//   - HistoryRecord: the append-only audit entry produced by each transition
//
// Key business rules:
//   - An order's status is always a member of the enumerated set
//   - A transition is legal iff the target appears in the current status's successor set
//   - Terminal statuses (DELIVERED, CANCELLED, REFUNDED) have no successors
//   - A status never transitions to itself unless it declares itself a successor
//
// The transition table is process-wide static configuration: built once,
// never mutated, and only reachable through accessor functions that hand out
// copies.
package order

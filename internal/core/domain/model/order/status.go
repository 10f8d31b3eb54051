package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status represents a lifecycle state of a laundry order.
//
// Statuses form a state machine whose edges are declared in the transition
// table (see transitions.go). Legality of movement between two statuses is
// defined solely by that table, never by declaration order.
//
// The happy path runs:
//
//	ORDER_PLACED -> CONFIRMED -> PICKUP_ASSIGNED -> PICKUP_IN_PROGRESS
//	  -> PICKUP_COMPLETED -> RECEIVED_AT_FACILITY -> PROCESSING_STARTED
//	  -> PROCESSING_COMPLETED -> QUALITY_CHECK -> READY_FOR_DELIVERY
//	  -> DELIVERY_ASSIGNED -> DELIVERY_IN_PROGRESS -> DELIVERED
//
// Failed pickup and delivery legs loop back to their assignment status.
// DELIVERED, CANCELLED, and REFUNDED are terminal.
type Status string

const (
	OrderPlaced         Status = "ORDER_PLACED"
	Confirmed           Status = "CONFIRMED"
	PickupAssigned      Status = "PICKUP_ASSIGNED"
	PickupInProgress    Status = "PICKUP_IN_PROGRESS"
	PickupCompleted     Status = "PICKUP_COMPLETED"
	PickupFailed        Status = "PICKUP_FAILED"
	ReceivedAtFacility  Status = "RECEIVED_AT_FACILITY"
	ProcessingStarted   Status = "PROCESSING_STARTED"
	ProcessingCompleted Status = "PROCESSING_COMPLETED"
	QualityCheck        Status = "QUALITY_CHECK"
	ReadyForDelivery    Status = "READY_FOR_DELIVERY"
	DeliveryAssigned    Status = "DELIVERY_ASSIGNED"
	DeliveryInProgress  Status = "DELIVERY_IN_PROGRESS"
	Delivered           Status = "DELIVERED"
	DeliveryFailed      Status = "DELIVERY_FAILED"
	Cancelled           Status = "CANCELLED"
	Refunded            Status = "REFUNDED"
)

// Validate checks that the Status value is a member of the enumerated set.
//
// Returns:
//   - nil if the status has a descriptor in the transition table
//   - a ValueIsInvalid error for any other value, including the empty string
//
// This method is the gate for status values arriving from external sources
// (API payloads, database rows) before they are used anywhere else.
func (s Status) Validate() error {
	if _, ok := statusConfig[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a recognized order status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing transitions.
// Unknown statuses are not terminal; they are invalid.
func (s Status) IsTerminal() bool {
	descriptor, ok := statusConfig[s]
	return ok && len(descriptor.Next) == 0
}

// RequiresDriver reports whether transitioning an order into this status
// implies a driver-assignment side effect, which in turn makes a driver ID
// mandatory on the transition request.
func (s Status) RequiresDriver() bool {
	return s == PickupAssigned || s == DeliveryAssigned
}

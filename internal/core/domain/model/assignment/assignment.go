// Package assignment provides the DriverAssignment entity: the association
// between a driver and an order for one leg of the trip (pickup or delivery).
//
// The status engine creates and updates assignments as a side effect of
// moving an order into PICKUP_ASSIGNED or DELIVERY_ASSIGNED, always inside
// the same transaction as the status change. The assignment lifecycle beyond
// that (driver acceptance, route planning) belongs to other components.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when a DriverAssignment was not
// created through NewDriverAssignment.
var ErrAssignmentIsNotConstructed = errors.New("DriverAssignment must be created via NewDriverAssignment")

// Kind distinguishes the pickup leg from the delivery leg.
type Kind string

const (
	Pickup   Kind = "pickup"
	Delivery Kind = "delivery"
)

// Validate checks that the Kind value is one of the two declared legs.
func (k Kind) Validate() error {
	if k != Pickup && k != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("assignment kind",
			fmt.Errorf("%q is not a recognized assignment kind", string(k)))
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}

// DriverAssignment associates a driver with an order for one trip leg.
// Uniqueness is keyed by (orderID, driverID, kind); re-assigning the same
// driver to the same leg is an upsert, not a duplicate.
type DriverAssignment struct {
	orderID    int64
	driverID   int64
	kind       Kind
	assignedAt time.Time

	isConstructed bool
}

// NewDriverAssignment creates a validated assignment stamped with the current time.
func NewDriverAssignment(orderID, driverID int64, kind Kind) (*DriverAssignment, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if driverID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("driver id",
			fmt.Errorf("%d is not a positive identifier", driverID))
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	return &DriverAssignment{
		orderID:       orderID,
		driverID:      driverID,
		kind:          kind,
		assignedAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreDriverAssignment recreates an assignment from persisted state,
// keeping the original assignment time.
func RestoreDriverAssignment(orderID, driverID int64, kind Kind, assignedAt time.Time) (*DriverAssignment, error) {
	restored, err := NewDriverAssignment(orderID, driverID, kind)
	if err != nil {
		return nil, err
	}

	restored.assignedAt = assignedAt
	return restored, nil
}

// Validate ensures the assignment was created via NewDriverAssignment.
func (a *DriverAssignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// OrderID returns the order this assignment belongs to.
func (a *DriverAssignment) OrderID() int64 {
	return a.orderID
}

// DriverID returns the assigned driver.
func (a *DriverAssignment) DriverID() int64 {
	return a.driverID
}

// Kind returns the trip leg this assignment covers.
func (a *DriverAssignment) Kind() Kind {
	return a.kind
}

// AssignedAt returns when the assignment was made, in UTC.
func (a *DriverAssignment) AssignedAt() time.Time {
	return a.assignedAt
}

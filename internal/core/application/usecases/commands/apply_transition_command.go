package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand requests moving one order into a target status.
// It carries everything the executor needs: the order, the requested target,
// the acting staff member (nil for system-initiated transitions), the driver
// for assignment statuses, and a free-form note for the audit trail.
//
// All caller errors are caught at construction time, before any persistence
// is touched: an unknown target status, a non-positive identifier, or a
// missing driver for an assignment status all fail fast here.
type ApplyTransitionCommand struct {
	orderID      int64
	target       order.Status
	actorStaffID *int64
	driverID     *int64
	notes        string

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a validated transition request.
//
// Returns a validation error when:
//   - orderID is not positive
//   - target is outside the enumerated status set
//   - target is PICKUP_ASSIGNED or DELIVERY_ASSIGNED and driverID is nil
//   - driverID is supplied but not positive
func NewApplyTransitionCommand(
	orderID int64,
	target order.Status,
	actorStaffID *int64,
	driverID *int64,
	notes string,
) (ApplyTransitionCommand, error) {
	if orderID <= 0 {
		return ApplyTransitionCommand{}, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := target.Validate(); err != nil {
		return ApplyTransitionCommand{}, err
	}
	if target.RequiresDriver() && driverID == nil {
		return ApplyTransitionCommand{}, errs.NewValueIsRequiredErrorWithCause("driverId",
			fmt.Errorf("transition to %s assigns a driver", target))
	}
	if driverID != nil && *driverID <= 0 {
		return ApplyTransitionCommand{}, errs.NewValueIsInvalidErrorWithCause("driver id",
			fmt.Errorf("%d is not a positive identifier", *driverID))
	}
	if actorStaffID != nil && *actorStaffID <= 0 {
		return ApplyTransitionCommand{}, errs.NewValueIsInvalidErrorWithCause("staff id",
			fmt.Errorf("%d is not a positive identifier", *actorStaffID))
	}

	return ApplyTransitionCommand{
		orderID:      orderID,
		target:       target,
		actorStaffID: actorStaffID,
		driverID:     driverID,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c *ApplyTransitionCommand) OrderID() int64 {
	return c.orderID
}

// Target returns the requested target status.
func (c *ApplyTransitionCommand) Target() order.Status {
	return c.target
}

// ActorStaffID returns the staff member requesting the transition, or nil.
func (c *ApplyTransitionCommand) ActorStaffID() *int64 {
	return c.actorStaffID
}

// DriverID returns the driver for assignment statuses, or nil.
func (c *ApplyTransitionCommand) DriverID() *int64 {
	return c.driverID
}

// Notes returns the free-form note recorded on the audit trail.
func (c *ApplyTransitionCommand) Notes() string {
	return c.notes
}

package order

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIllegalTransition is the sentinel wrapped by every IllegalTransitionError.
	// An illegal transition is an expected business outcome, not a fault:
	// callers report it, they do not treat it as an internal error.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// IllegalTransitionError names a well-formed but disallowed transition pair.
// The message is suitable for surfacing to API callers as a rejection reason.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s cannot move to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Order represents a laundry pickup-and-delivery order. It is the aggregate
// root owning the single mutable status field; the status is mutated only
// through TransitionTo, never written directly elsewhere.
//
// Order follows these invariants:
//   - Must have a positive numeric identifier
//   - Must have a non-empty human-facing order number (used in notifications)
//   - Its status is always a member of the enumerated set
//   - Status changes follow the declared transition table
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the numeric identifier for the order
	id int64

	// orderNumber is the human-facing reference printed on receipts and notifications
	orderNumber string

	// customerEmail receives status-change notifications
	customerEmail string

	// status is the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in the ORDER_PLACED status.
//
// Parameters:
//   - id: positive numeric identifier
//   - orderNumber: non-empty human-facing order reference
//   - customerEmail: notification address; may be empty when the customer opted out
//
// Returns the created order, or a validation error if any parameter is invalid.
// Order creation itself happens outside the status engine; the engine only
// ever moves existing orders between states.
func NewOrder(id int64, orderNumber, customerEmail string) (*Order, error) {
	return newOrder(id, orderNumber, customerEmail, OrderPlaced)
}

// RestoreOrder reconstructs an Order from persistence with an arbitrary
// current status. The status must be a member of the enumerated set:
// a row holding an unknown status is a data-integrity problem and is
// rejected rather than silently coerced.
func RestoreOrder(id int64, orderNumber, customerEmail string, status Status) (*Order, error) {
	return newOrder(id, orderNumber, customerEmail, status)
}

func newOrder(id int64, orderNumber, customerEmail string, status Status) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a positive identifier", id))
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		customerEmail: customerEmail,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's numeric identifier.
func (o *Order) ID() int64 {
	return o.id
}

// OrderNumber returns the human-facing order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerEmail returns the customer's notification address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TransitionTo moves the order into target if the transition table declares
// an edge from the current status to target.
//
// Returns:
//   - nil on a legal transition; the order's status is updated in place
//   - a ValueIsInvalid error when target is outside the enumerated set
//   - an IllegalTransitionError (wrapping ErrIllegalTransition) when the pair
//     is well formed but not declared; the order is left unchanged
func (o *Order) TransitionTo(target Status) error {
	allowed, err := CanTransition(o.status, target)
	if err != nil {
		return err
	}
	if !allowed {
		return &IllegalTransitionError{From: o.status, To: target}
	}

	o.status = target
	return nil
}

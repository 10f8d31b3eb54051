package order

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

// HistoryRecord is one append-only audit entry capturing a single status
// transition. Records are written once by the transition executor, inside
// the same transaction as the status change, and never updated or deleted.
type HistoryRecord struct {
	orderID        int64
	previousStatus Status
	newStatus      Status
	actorStaffID   *int64
	notes          string
	occurredAt     time.Time

	isConstructed bool
}

// NewHistoryRecord creates an audit entry for a transition that is about to
// be committed. Both statuses must resolve against the transition table.
// actorStaffID is nil for system-initiated transitions; notes may be empty.
func NewHistoryRecord(orderID int64, previous, next Status, actorStaffID *int64, notes string) (HistoryRecord, error) {
	if orderID <= 0 {
		return HistoryRecord{}, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := previous.Validate(); err != nil {
		return HistoryRecord{}, err
	}
	if err := next.Validate(); err != nil {
		return HistoryRecord{}, err
	}

	return HistoryRecord{
		orderID:        orderID,
		previousStatus: previous,
		newStatus:      next,
		actorStaffID:   actorStaffID,
		notes:          notes,
		occurredAt:     time.Now().UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreHistoryRecord reconstructs an audit entry from persistence.
func RestoreHistoryRecord(
	orderID int64,
	previous, next Status,
	actorStaffID *int64,
	notes string,
	occurredAt time.Time,
) (HistoryRecord, error) {
	record, err := NewHistoryRecord(orderID, previous, next, actorStaffID, notes)
	if err != nil {
		return HistoryRecord{}, err
	}

	record.occurredAt = occurredAt
	return record, nil
}

// Validate ensures the record was created via NewHistoryRecord.
func (r HistoryRecord) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("history record must be created via NewHistoryRecord")
	}
	return nil
}

// OrderID returns the order the record belongs to.
func (r HistoryRecord) OrderID() int64 {
	return r.orderID
}

// PreviousStatus returns the status the order held before the transition.
func (r HistoryRecord) PreviousStatus() Status {
	return r.previousStatus
}

// NewStatus returns the status the order moved into.
func (r HistoryRecord) NewStatus() Status {
	return r.newStatus
}

// ActorStaffID returns the staff member who triggered the transition,
// or nil for system-initiated transitions.
func (r HistoryRecord) ActorStaffID() *int64 {
	return r.actorStaffID
}

// Notes returns the free-form note attached to the transition.
func (r HistoryRecord) Notes() string {
	return r.notes
}

// OccurredAt returns when the transition was recorded, in UTC.
func (r HistoryRecord) OccurredAt() time.Time {
	return r.occurredAt
}

package ports

import (
	"context"

	"laundry/internal/core/domain/model/assignment"
)

// AssignmentRepository defines the persistence contract for driver assignments.
type AssignmentRepository interface {
	// Upsert inserts the assignment or, when a row for the same
	// (orderID, driverID, kind) key already exists, refreshes its timestamp.
	// Called inside the same transaction as the status change that implied it.
	Upsert(ctx context.Context, aggregate *assignment.DriverAssignment) error

	// GetByOrder returns all assignments recorded for an order.
	GetByOrder(ctx context.Context, orderID int64) ([]*assignment.DriverAssignment, error)
}

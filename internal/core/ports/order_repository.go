package ports

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only transition history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its numeric identifier.
	// Returns an ObjectNotFound error when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus persists the aggregate's current status with a conditional
	// write: the row is only updated while it still holds previous. Zero rows
	// affected means a concurrent transition won the race; the repository
	// reports this as a VersionIsInvalid error so the caller can re-read and
	// retry. An order that vanished entirely surfaces as ObjectNotFound.
	UpdateStatus(ctx context.Context, aggregate *order.Order, previous order.Status) error

	// AddHistory appends one audit record. History rows are never updated
	// or deleted; AddHistory is called inside the same transaction as
	// UpdateStatus so the two can only become visible together.
	AddHistory(ctx context.Context, record order.HistoryRecord) error

	// GetHistory returns the audit trail for an order, oldest first.
	GetHistory(ctx context.Context, orderID int64) ([]order.HistoryRecord, error)
}

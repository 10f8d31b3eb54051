// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its append-only transition history.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Order identifiers are assigned by the upstream ordering system; this engine
// never generates them.
type OrderDTO struct {
	ID            int64  `gorm:"primaryKey"`
	OrderNumber   string `gorm:"size:32;uniqueIndex"`
	CustomerEmail string `gorm:"size:255"`
	Status        string `gorm:"size:32;index"`
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO represents one audit trail row. Rows are insert-only: the engine
// never updates or deletes them.
type HistoryDTO struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	OrderID        int64  `gorm:"index"`
	PreviousStatus string `gorm:"size:32"`
	NewStatus      string `gorm:"size:32"`
	ActorStaffID   *int64
	Notes          string `gorm:"size:1024"`
	OccurredAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        aggregate.Status().String(),
		UpdatedAt:     time.Now().UTC(),
	}
}

// toDomain reconstructs the order aggregate from a database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.ID, dto.OrderNumber, dto.CustomerEmail, order.Status(dto.Status))
}

// historyFromDomain converts an audit entry to its database representation.
// The row ID is left zero so the database assigns it.
func historyFromDomain(record order.HistoryRecord) HistoryDTO {
	return HistoryDTO{
		OrderID:        record.OrderID(),
		PreviousStatus: record.PreviousStatus().String(),
		NewStatus:      record.NewStatus().String(),
		ActorStaffID:   record.ActorStaffID(),
		Notes:          record.Notes(),
		OccurredAt:     record.OccurredAt(),
	}
}

// historyToDomain reconstructs an audit entry from a database row.
func historyToDomain(dto HistoryDTO) (order.HistoryRecord, error) {
	return order.RestoreHistoryRecord(
		dto.OrderID,
		order.Status(dto.PreviousStatus),
		order.Status(dto.NewStatus),
		dto.ActorStaffID,
		dto.Notes,
		dto.OccurredAt,
	)
}

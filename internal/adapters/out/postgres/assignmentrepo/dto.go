// Package assignmentrepo provides data transfer objects and mapping functions
// for driver-assignment persistence.
package assignmentrepo

import (
	"time"

	"laundry/internal/core/domain/model/assignment"
)

// AssignmentDTO represents the database structure for driver assignments.
// The composite unique index enforces the (order, driver, kind) upsert key.
type AssignmentDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"uniqueIndex:idx_assignment_key"`
	DriverID   int64     `gorm:"uniqueIndex:idx_assignment_key"`
	Kind       string    `gorm:"size:16;uniqueIndex:idx_assignment_key"`
	AssignedAt time.Time
}

// TableName specifies the database table name for driver assignments.
func (AssignmentDTO) TableName() string {
	return "driver_assignments"
}

// fromDomain converts a driver assignment to its database representation.
func fromDomain(aggregate *assignment.DriverAssignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    aggregate.OrderID(),
		DriverID:   aggregate.DriverID(),
		Kind:       aggregate.Kind().String(),
		AssignedAt: aggregate.AssignedAt(),
	}
}

// toDomain reconstructs a driver assignment from a database row.
func toDomain(dto AssignmentDTO) (*assignment.DriverAssignment, error) {
	return assignment.RestoreDriverAssignment(
		dto.OrderID,
		dto.DriverID,
		assignment.Kind(dto.Kind),
		dto.AssignedAt,
	)
}

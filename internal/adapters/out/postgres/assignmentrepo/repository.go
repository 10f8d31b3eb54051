package assignmentrepo

import (
	"context"

	"laundry/internal/core/domain/model/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM driver-assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Upsert inserts the assignment or refreshes the timestamp of an existing row
// with the same (order, driver, kind) key.
func (r *GormAssignmentRepository) Upsert(ctx context.Context, aggregate *assignment.DriverAssignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "order_id"},
				{Name: "driver_id"},
				{Name: "kind"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"assigned_at"}),
		}).
		Create(&dto).Error
}

// GetByOrder returns all assignments recorded for an order, pickup leg first.
func (r *GormAssignmentRepository) GetByOrder(
	ctx context.Context,
	orderID int64,
) ([]*assignment.DriverAssignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Order("assigned_at, id").
		Find(&dtos, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}

	assignments := make([]*assignment.DriverAssignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

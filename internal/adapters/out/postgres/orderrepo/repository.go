package orderrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists the aggregate's status with a conditional write.
// The row is only touched while it still holds the previous status, so a
// transition that raced with another writer affects zero rows and comes back
// as a VersionIsInvalid error for the caller to retry.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID(), previous.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Either the order is gone or somebody else moved it first.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", aggregate.ID()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID())
		}
		return errs.NewVersionIsInvalidError("order status")
	}

	return nil
}

// AddHistory appends one audit row.
func (r *GormOrderRepository) AddHistory(ctx context.Context, record order.HistoryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHistory returns an order's audit trail, oldest first.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID int64) ([]order.HistoryRecord, error) {
	var dtos []HistoryDTO
	if err := r.db.WithContext(ctx).
		Order("occurred_at, id").
		Find(&dtos, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}

	records := make([]order.HistoryRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := historyToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetStaleOrdersQueryHandler retrieves orders that have not transitioned for
// longer than the query's threshold. Terminal statuses are excluded: a
// delivered or cancelled order is allowed to sit forever.
type GetStaleOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleOrdersQueryHandler creates a handler for stale order queries.
func NewGetStaleOrdersQueryHandler(db *gorm.DB) GetStaleOrdersQueryHandler {
	return GetStaleOrdersQueryHandler{db: db}
}

// Handle returns orders whose last status change is older than the threshold,
// oldest first.
func (h GetStaleOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleOrdersQuery,
) ([]GetStaleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.Threshold())
	terminal := []string{
		order.Delivered.String(),
		order.Cancelled.String(),
		order.Refunded.String(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			updated_at
		FROM orders
		WHERE status NOT IN ?
		  AND updated_at < ?
		ORDER BY updated_at
	`, terminal, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]GetStaleOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id          int64
			orderNumber string
			status      string
			updatedAt   time.Time
		)

		if err = rows.Scan(&id, &orderNumber, &status, &updatedAt); err != nil {
			return nil, err
		}

		stale = append(stale, GetStaleOrdersQueryResponse{
			ID:          id,
			OrderNumber: orderNumber,
			Status:      order.Status(status),
			UpdatedAt:   updatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}

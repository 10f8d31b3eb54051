package queries

import (
	"context"
	"strings"
	"time"

	"laundry/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetTeamOrdersQueryHandler retrieves a team's worklist from the database.
// Reads bypass the domain aggregates: the worklist is a projection, and the
// handler queries the order rows directly.
type GetTeamOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetTeamOrdersQueryHandler creates a handler for team worklist queries.
// Requires a GORM database connection for query execution.
func NewGetTeamOrdersQueryHandler(db *gorm.DB) GetTeamOrdersQueryHandler {
	return GetTeamOrdersQueryHandler{db: db}
}

// Handle executes the worklist query. Results are sorted by order ID for
// consistent output. An order with no matching rows yields an empty slice,
// not an error.
func (h GetTeamOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetTeamOrdersQuery,
) ([]GetTeamOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if teamStatuses := query.Team().statuses(); teamStatuses != nil {
		values := make([]string, 0, len(teamStatuses))
		for _, s := range teamStatuses {
			values = append(values, s.String())
		}
		conditions = append(conditions, "o.status IN ?")
		args = append(args, values)
	}

	filters := query.Filters()
	if filters.Status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, filters.Status.String())
	}
	if filters.DriverID != nil {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM driver_assignments a WHERE a.order_id = o.id AND a.driver_id = ?)")
		args = append(args, *filters.DriverID)
	}
	if filters.StaffID != nil {
		// The worklist cares who acted last, not who ever touched the order.
		conditions = append(conditions, `(
			SELECT h.actor_staff_id FROM order_history h
			WHERE h.order_id = o.id
			ORDER BY h.occurred_at DESC, h.id DESC
			LIMIT 1
		) = ?`)
		args = append(args, *filters.StaffID)
	}

	sql := `
		SELECT
			o.id,
			o.order_number,
			o.customer_email,
			o.status,
			o.updated_at
		FROM orders o
	`
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY o.id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetTeamOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id            int64
			orderNumber   string
			customerEmail string
			status        string
			updatedAt     time.Time
		)

		if err = rows.Scan(&id, &orderNumber, &customerEmail, &status, &updatedAt); err != nil {
			return nil, err
		}

		orders = append(orders, GetTeamOrdersQueryResponse{
			ID:            id,
			OrderNumber:   orderNumber,
			CustomerEmail: customerEmail,
			Status:        order.Status(status),
			UpdatedAt:     updatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

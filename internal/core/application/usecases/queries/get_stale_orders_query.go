package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetStaleOrdersQueryIsNotConstructed = errors.New(
	"GetStaleOrdersQuery must be created via NewGetStaleOrdersQuery constructor",
)

// GetStaleOrdersQuery finds orders stuck in a non-terminal status longer than
// a threshold. Used by the watchdog job for operational visibility; it reads
// only and never transitions anything.
type GetStaleOrdersQuery struct {
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleOrdersQuery creates a query with the given staleness threshold.
// The threshold must be positive.
func NewGetStaleOrdersQuery(threshold time.Duration) (GetStaleOrdersQuery, error) {
	if threshold <= 0 {
		return GetStaleOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("threshold",
			errors.New("staleness threshold must be positive"))
	}

	return GetStaleOrdersQuery{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleOrdersQueryIsNotConstructed)
}

// Threshold returns how long an order may sit in one status before it counts
// as stale.
func (q GetStaleOrdersQuery) Threshold() time.Duration {
	return q.threshold
}

// GetStaleOrdersQueryResponse is one order that has not moved for longer than
// the threshold.
type GetStaleOrdersQueryResponse struct {
	ID          int64
	OrderNumber string
	Status      order.Status
	UpdatedAt   time.Time
}

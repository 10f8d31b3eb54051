// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never mutate orders; they project current state for callers.
package queries

import (
	"errors"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrGetAllowedTransitionsQueryIsNotConstructed = errors.New(
	"GetAllowedTransitionsQuery must be created via NewGetAllowedTransitionsQuery constructor",
)

// GetAllowedTransitionsQuery asks which statuses an order in the given status
// may move to next. Drives UI status pickers: the answer carries full display
// metadata, in the table's declared order.
type GetAllowedTransitionsQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetAllowedTransitionsQuery creates a query for the given current status.
// The status is validated eagerly: a value outside the enumerated set fails
// here, not in the handler.
func NewGetAllowedTransitionsQuery(status order.Status) (GetAllowedTransitionsQuery, error) {
	if err := status.Validate(); err != nil {
		return GetAllowedTransitionsQuery{}, err
	}

	return GetAllowedTransitionsQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedTransitionsQueryIsNotConstructed)
}

// Status returns the current status being queried.
func (q GetAllowedTransitionsQuery) Status() order.Status {
	return q.status
}

// GetAllowedTransitionsQueryResponse is one permitted target status with its
// display metadata.
type GetAllowedTransitionsQueryResponse struct {
	Status      order.Status
	Label       string
	Description string
	Color       string
	Icon        string
}

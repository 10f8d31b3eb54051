package queries

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// GetAllowedTransitionsQueryHandler answers allowed-transition queries from
// the in-process transition table. No storage is involved: the table is
// process-wide and immutable.
type GetAllowedTransitionsQueryHandler struct{}

// NewGetAllowedTransitionsQueryHandler creates a handler for
// allowed-transition queries.
func NewGetAllowedTransitionsQueryHandler() GetAllowedTransitionsQueryHandler {
	return GetAllowedTransitionsQueryHandler{}
}

// Handle returns the permitted target statuses for the queried status, with
// display metadata, in the transition table's declared order. Terminal
// statuses yield an empty slice, not an error.
func (h GetAllowedTransitionsQueryHandler) Handle(
	_ context.Context,
	query GetAllowedTransitionsQuery,
) ([]GetAllowedTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	descriptors, err := order.AllowedTransitions(query.Status())
	if err != nil {
		return nil, err
	}

	responses := make([]GetAllowedTransitionsQueryResponse, 0, len(descriptors))
	for _, d := range descriptors {
		responses = append(responses, GetAllowedTransitionsQueryResponse{
			Status:      d.Status,
			Label:       d.Label,
			Description: d.Description,
			Color:       d.Color,
			Icon:        d.Icon,
		})
	}

	return responses, nil
}

package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetTeamOrdersQueryIsNotConstructed = errors.New(
	"GetTeamOrdersQuery must be created via NewGetTeamOrdersQuery constructor",
)

// Team is a worklist partition over orders. It is not a stored entity:
// each team maps to the slice of the lifecycle its people work.
type Team string

const (
	// TeamDriver sees orders on a pickup or delivery leg.
	TeamDriver Team = "driver"
	// TeamFacility sees orders inside the facility pipeline.
	TeamFacility Team = "facility"
	// TeamOperations sees everything.
	TeamOperations Team = "operations"
)

// Validate checks the team is one of the recognized partitions.
func (t Team) Validate() error {
	switch t {
	case TeamDriver, TeamFacility, TeamOperations:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("team",
			errors.New("team must be one of: driver, facility, operations"))
	}
}

func (t Team) String() string {
	return string(t)
}

// statuses returns the team's worklist status set, nil meaning no restriction.
func (t Team) statuses() []order.Status {
	switch t {
	case TeamDriver:
		return []order.Status{
			order.PickupAssigned,
			order.PickupInProgress,
			order.PickupFailed,
			order.DeliveryAssigned,
			order.DeliveryInProgress,
			order.DeliveryFailed,
		}
	case TeamFacility:
		return []order.Status{
			order.PickupCompleted,
			order.ReceivedAtFacility,
			order.ProcessingStarted,
			order.ProcessingCompleted,
			order.QualityCheck,
			order.ReadyForDelivery,
		}
	default:
		return nil
	}
}

// GetTeamOrdersFilters narrows a team worklist. All fields are optional.
type GetTeamOrdersFilters struct {
	// Status keeps only orders currently in this status. It must belong to
	// the team's status set to ever match anything; an unknown status value
	// is rejected at construction.
	Status *order.Status

	// DriverID keeps only orders with an assignment for this driver.
	DriverID *int64

	// StaffID keeps only orders whose most recent transition was performed
	// by this staff member.
	StaffID *int64
}

// GetTeamOrdersQuery retrieves the orders relevant to one team's worklist.
//
// Example:
//
//	query, err := NewGetTeamOrdersQuery(TeamDriver, GetTeamOrdersFilters{DriverID: &driverID})
//	if err != nil {
//	    return err // unknown team or malformed filter
//	}
//	orders, err := handler.Handle(ctx, query)
type GetTeamOrdersQuery struct {
	team    Team
	filters GetTeamOrdersFilters

	guard guard.ConstructorGuard
}

// NewGetTeamOrdersQuery creates a validated worklist query.
//
// Returns a validation error when the team is outside
// {driver, facility, operations}, the status filter is not an enumerated
// status, or an identifier filter is not positive.
func NewGetTeamOrdersQuery(team Team, filters GetTeamOrdersFilters) (GetTeamOrdersQuery, error) {
	if err := team.Validate(); err != nil {
		return GetTeamOrdersQuery{}, err
	}
	if filters.Status != nil {
		if err := filters.Status.Validate(); err != nil {
			return GetTeamOrdersQuery{}, err
		}
	}
	if filters.DriverID != nil && *filters.DriverID <= 0 {
		return GetTeamOrdersQuery{}, errs.NewValueIsInvalidError("driver id")
	}
	if filters.StaffID != nil && *filters.StaffID <= 0 {
		return GetTeamOrdersQuery{}, errs.NewValueIsInvalidError("staff id")
	}

	return GetTeamOrdersQuery{
		team:    team,
		filters: filters,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTeamOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTeamOrdersQueryIsNotConstructed)
}

// Team returns the worklist partition being queried.
func (q GetTeamOrdersQuery) Team() Team {
	return q.team
}

// Filters returns the optional narrowing filters.
func (q GetTeamOrdersQuery) Filters() GetTeamOrdersFilters {
	return q.filters
}

// GetTeamOrdersQueryResponse is one order on a team's worklist.
type GetTeamOrdersQueryResponse struct {
	ID            int64
	OrderNumber   string
	CustomerEmail string
	Status        order.Status
	UpdatedAt     time.Time
}

// Package http exposes the status engine over a small JSON API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope returned for all failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionRequest is the body of POST /api/v1/orders/:id/status.
type TransitionRequest struct {
	Status       string `json:"status"`
	ActorStaffID *int64 `json:"actorStaffId,omitempty"`
	DriverID     *int64 `json:"driverId,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// TransitionResponse reports the outcome of a transition request. Success is
// false when the state machine rejected the move; Message then names the
// rejected pair.
type TransitionResponse struct {
	Success        bool   `json:"success"`
	OrderID        int64  `json:"orderId"`
	OrderNumber    string `json:"orderNumber"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	Message        string `json:"message,omitempty"`
}

// TransitionOption is one allowed target status with display metadata.
type TransitionOption struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// TeamOrder is one row of a team worklist.
type TeamOrder struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Server wires HTTP routes to the application's command and query handlers.
type Server struct {
	applyTransitionHandler       commands.ApplyTransitionCommandHandler
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler
	getTeamOrdersHandler         queries.GetTeamOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler,
	getTeamOrdersHandler queries.GetTeamOrdersQueryHandler,
) *Server {
	return &Server{
		applyTransitionHandler:       applyTransitionHandler,
		getAllowedTransitionsHandler: getAllowedTransitionsHandler,
		getTeamOrdersHandler:         getTeamOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/orders/:id/status", s.ApplyTransition)
	e.GET("/api/v1/statuses/:status/transitions", s.GetAllowedTransitions)
	e.GET("/api/v1/teams/:team/orders", s.GetTeamOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ApplyTransition handles POST /api/v1/orders/:id/status - moves an order to
// a new status.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Order id must be an integer",
		})
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, order.Status(req.Status), req.ActorStaffID, req.DriverID, req.Notes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition request: " + err.Error(),
		})
	}

	result, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, commands.ErrTransitionConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order is being modified concurrently, try again",
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to apply transition",
		})
	}

	response := TransitionResponse{
		Success:        result.Success,
		OrderID:        result.OrderID,
		OrderNumber:    result.OrderNumber,
		PreviousStatus: result.PreviousStatus.String(),
		NewStatus:      result.NewStatus.String(),
		Message:        result.Message,
	}

	if !result.Success {
		return ctx.JSON(http.StatusConflict, response)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetAllowedTransitions handles GET /api/v1/statuses/:status/transitions -
// lists the permitted next statuses with display metadata.
func (s *Server) GetAllowedTransitions(ctx echo.Context) error {
	query, err := queries.NewGetAllowedTransitionsQuery(order.Status(ctx.Param("status")))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown status: " + ctx.Param("status"),
		})
	}

	options, err := s.getAllowedTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve transitions",
		})
	}

	response := make([]TransitionOption, len(options))
	for i, option := range options {
		response[i] = TransitionOption{
			Status:      option.Status.String(),
			Label:       option.Label,
			Description: option.Description,
			Color:       option.Color,
			Icon:        option.Icon,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTeamOrders handles GET /api/v1/teams/:team/orders - returns the team's
// worklist, optionally filtered by status, driverId, and staffId.
func (s *Server) GetTeamOrders(ctx echo.Context) error {
	filters, err := parseTeamOrderFilters(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	query, err := queries.NewGetTeamOrdersQuery(queries.Team(ctx.Param("team")), filters)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid worklist request: " + err.Error(),
		})
	}

	orders, err := s.getTeamOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]TeamOrder, len(orders))
	for i, o := range orders {
		response[i] = TeamOrder{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerEmail: o.CustomerEmail,
			Status:        o.Status.String(),
			UpdatedAt:     o.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseTeamOrderFilters(ctx echo.Context) (queries.GetTeamOrdersFilters, error) {
	var filters queries.GetTeamOrdersFilters

	if raw := ctx.QueryParam("status"); raw != "" {
		status := order.Status(raw)
		filters.Status = &status
	}
	for param, target := range map[string]**int64{
		"driverId": &filters.DriverID,
		"staffId":  &filters.StaffID,
	} {
		raw := ctx.QueryParam(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return queries.GetTeamOrdersFilters{}, errors.New(param + " must be an integer")
		}
		*target = &value
	}

	return filters, nil
}

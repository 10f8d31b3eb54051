package commands

import (
	"context"
	"errors"
	"log/slog"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// maxTransitionAttempts bounds the internal retry loop for transitions that
// lose the conditional-update race. Each retry re-reads the order and
// re-validates the transition against its fresh status.
const maxTransitionAttempts = 3

// ErrTransitionConflict is returned when every retry attempt lost the race
// against concurrent transitions on the same order. Callers may retry.
var ErrTransitionConflict = errors.New("order was modified concurrently, transition attempts exhausted")

// ApplyTransitionResult reports the outcome of a transition request.
// Success=false with a Message is the expected, reportable shape of a
// well-formed but disallowed transition; it is not an error.
type ApplyTransitionResult struct {
	Success        bool
	OrderID        int64
	OrderNumber    string
	PreviousStatus order.Status
	NewStatus      order.Status
	Message        string

	// customerEmail rides along for the notification dispatch only;
	// it is not part of the caller-facing result.
	customerEmail string
}

// ApplyTransitionCommandHandler is the transition executor. It applies a
// validated status change, records the audit trail, and upserts the implied
// driver assignment as one atomic unit, then dispatches a best-effort
// customer notification off the request path.
//
// Ordering guarantee: the status write is conditional on the status read at
// the start of the attempt, so two racing callers holding the same stale
// snapshot cannot both succeed. The loser is retried against the fresh
// status; if the transition is no longer legal it degrades into the
// Success=false outcome rather than an error.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, notifier, logger)
//	cmd, err := NewApplyTransitionCommand(42, order.PickupAssigned, &staffID, &driverID, "")
//	if err != nil {
//	    return err // caller error, nothing was persisted
//	}
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case err != nil:
//	    return err // order not found, conflict budget exhausted, or storage fault
//	case !result.Success:
//	    log.Println(result.Message) // illegal transition, report to the caller
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.StatusNotifier
	logger     *slog.Logger
}

// NewApplyTransitionCommandHandler creates the transition executor.
// The notifier is invoked after commit only; pass a no-op implementation
// when notifications are disabled.
func NewApplyTransitionCommandHandler(
	uowFactory UoWFactory,
	notifier ports.StatusNotifier,
	logger *slog.Logger,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "apply_transition"),
	}
}

// Handle executes the transition request.
//
// Outcomes:
//   - (result with Success=true, nil): the transition committed; status,
//     history, and any driver assignment are durable.
//   - (result with Success=false and Message, nil): the transition is illegal
//     from the order's current status; nothing was persisted.
//   - (zero result, error): the order does not exist, the command was not
//     constructed properly, the conflict retry budget ran out, or storage
//     failed. The order is never left partially transitioned.
func (h ApplyTransitionCommandHandler) Handle(
	ctx context.Context,
	command ApplyTransitionCommand,
) (ApplyTransitionResult, error) {
	if err := command.Validate(); err != nil {
		return ApplyTransitionResult{}, err
	}

	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		result, err := h.attempt(ctx, command)
		if err != nil && errors.Is(err, errs.ErrVersionIsInvalid) {
			h.logger.WarnContext(ctx, "transition lost conditional update race, retrying",
				"order_id", command.OrderID(),
				"target", command.Target().String(),
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return ApplyTransitionResult{}, err
		}

		if result.Success {
			h.dispatchNotification(ctx, result)
		}
		return result, nil
	}

	return ApplyTransitionResult{}, ErrTransitionConflict
}

// attempt runs one transactional try. A VersionIsInvalid error means the
// conditional status update matched zero rows and the caller should retry
// from a fresh read.
func (h ApplyTransitionCommandHandler) attempt(
	ctx context.Context,
	command ApplyTransitionCommand,
) (ApplyTransitionResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyTransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	ord, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return ApplyTransitionResult{}, err
	}

	previous := ord.Status()
	if err = ord.TransitionTo(command.Target()); err != nil {
		var illegal *order.IllegalTransitionError
		if errors.As(err, &illegal) {
			return ApplyTransitionResult{
				Success:        false,
				OrderID:        ord.ID(),
				OrderNumber:    ord.OrderNumber(),
				PreviousStatus: illegal.From,
				NewStatus:      illegal.To,
				Message:        illegal.Error(),
			}, nil
		}
		return ApplyTransitionResult{}, err
	}

	record, err := order.NewHistoryRecord(
		ord.ID(), previous, ord.Status(), command.ActorStaffID(), command.Notes())
	if err != nil {
		return ApplyTransitionResult{}, err
	}

	if err = ordersRepo.UpdateStatus(ctx, ord, previous); err != nil {
		return ApplyTransitionResult{}, err
	}

	if err = ordersRepo.AddHistory(ctx, record); err != nil {
		return ApplyTransitionResult{}, err
	}

	if command.Target().RequiresDriver() {
		if err = h.upsertAssignment(ctx, uow, command); err != nil {
			return ApplyTransitionResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyTransitionResult{}, err
	}

	return ApplyTransitionResult{
		Success:        true,
		OrderID:        ord.ID(),
		OrderNumber:    ord.OrderNumber(),
		PreviousStatus: previous,
		NewStatus:      ord.Status(),
		Message:        "",
		customerEmail:  ord.CustomerEmail(),
	}, nil
}

func (h ApplyTransitionCommandHandler) upsertAssignment(
	ctx context.Context,
	uow UoW,
	command ApplyTransitionCommand,
) error {
	kind := assignment.Pickup
	if command.Target() == order.DeliveryAssigned {
		kind = assignment.Delivery
	}

	driverAssignment, err := assignment.NewDriverAssignment(
		command.OrderID(), *command.DriverID(), kind)
	if err != nil {
		return err
	}

	return uow.AssignmentRepository().Upsert(ctx, driverAssignment)
}

// dispatchNotification hands the committed transition to the notifier on a
// detached goroutine. The notifier cannot fail the transition: errors are
// logged and swallowed, and the caller's response never waits on delivery.
func (h ApplyTransitionCommandHandler) dispatchNotification(ctx context.Context, result ApplyTransitionResult) {
	change := ports.StatusChange{
		OrderID:        result.OrderID,
		OrderNumber:    result.OrderNumber,
		CustomerEmail:  result.customerEmail,
		PreviousStatus: result.PreviousStatus,
		NewStatus:      result.NewStatus,
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		if err := h.notifier.NotifyStatusChange(detached, change); err != nil {
			h.logger.ErrorContext(detached, "status change notification failed",
				"order_id", change.OrderID,
				"order_number", change.OrderNumber,
				"new_status", change.NewStatus.String(),
				"error", err,
			)
		}
	}()
}

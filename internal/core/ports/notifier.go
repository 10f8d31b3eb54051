package ports

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// StatusChange is the notification payload describing one committed transition.
type StatusChange struct {
	OrderID        int64
	OrderNumber    string
	CustomerEmail  string
	PreviousStatus order.Status
	NewStatus      order.Status
}

// StatusNotifier delivers customer-facing notifications about committed
// transitions. Delivery is best effort: the executor invokes it only after
// the durable commit succeeded, off the request path, and treats any error
// as log-and-swallow. A notifier must never be able to fail a transition.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, change StatusChange) error
}

// NoopStatusNotifier discards all notifications. Used when messaging is not
// configured.
type NoopStatusNotifier struct{}

func (NoopStatusNotifier) NotifyStatusChange(context.Context, StatusChange) error {
	return nil
}

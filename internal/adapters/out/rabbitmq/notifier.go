// Package rabbitmq publishes status-change notifications to a RabbitMQ topic
// exchange. Downstream consumers (email, SMS, customer portal) bind their own
// queues; this adapter only publishes.
//
// Delivery is best effort by contract: the transition executor calls the
// notifier after commit, off the request path, and treats any returned error
// as log-and-swallow.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"laundry/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "laundry.order-status"
	exchangeKind = "topic"
)

// statusChangeEvent is the wire format fanned out to notification consumers.
type statusChangeEvent struct {
	EventID        string    `json:"event_id"`
	OrderID        int64     `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	CustomerEmail  string    `json:"customer_email"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Notifier implements ports.StatusNotifier on top of a RabbitMQ channel.
type Notifier struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

// NewNotifier connects to RabbitMQ, declares the status exchange, and returns
// a ready publisher.
func NewNotifier(url string) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(
		exchangeName,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Notifier{conn: conn, ch: ch}, nil
}

// NotifyStatusChange publishes one committed transition. The routing key is
// "status.<NEW_STATUS>" so consumers can bind to the statuses they care
// about ("status.DELIVERED") or to everything ("status.*").
func (n *Notifier) NotifyStatusChange(ctx context.Context, change ports.StatusChange) error {
	event := statusChangeEvent{
		EventID:        uuid.NewString(),
		OrderID:        change.OrderID,
		OrderNumber:    change.OrderNumber,
		CustomerEmail:  change.CustomerEmail,
		PreviousStatus: change.PreviousStatus.String(),
		NewStatus:      change.NewStatus.String(),
		OccurredAt:     time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status change event: %w", err)
	}

	routingKey := "status." + event.NewStatus

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(
		ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish status change event: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch != nil {
		n.ch.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}

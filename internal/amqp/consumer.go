package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"condo/internal/events"

	"github.com/rabbitmq/amqp091-go"
)

// ErrReject marks a message that can never be handled. It is dropped
// instead of requeued.
var ErrReject = errors.New("reject message")

// Handler processes one decoded event message.
type Handler func(ctx context.Context, msg *EventMessage) error

// Consume declares a durable queue bound to the exchange under the routing
// key of each kind and hands every delivery to handle until ctx ends.
// Deliveries are acknowledged manually: handled ones are acked, undecodable
// or rejected ones are dropped, and any other failure is requeued.
func (c *Client) Consume(ctx context.Context, queue string, kinds []events.Kind, handle Handler) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	if channel == nil {
		return amqp091.ErrClosed
	}

	_, err := channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	for _, kind := range kinds {
		if err := channel.QueueBind(queue, c.RoutingKey(kind), c.exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue to %s: %w", kind, err)
		}
	}
	// One unacknowledged message at a time.
	if err := channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := channel.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming events", "queue", queue, "kinds", len(kinds))
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			deliver(ctx, d, handle)
		}
	}
}

func deliver(ctx context.Context, d amqp091.Delivery, handle Handler) {
	msg, err := EventMessageFromJSON(d.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to decode event message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handle(ctx, msg); err != nil {
		requeue := !errors.Is(err, ErrReject)
		slog.ErrorContext(ctx, "Failed to handle event",
			"event_id", msg.ID,
			"kind", msg.Kind,
			"requeue", requeue,
			"error", err)
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}

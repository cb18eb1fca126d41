package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"jobmarket/internal/adapters/out/wire"
	"jobmarket/internal/core/ports"
)

var _ ports.EventStream = (*Stream)(nil)

// Stream consumes order-change events from a RabbitMQ queue and feeds
// them to the session. Messages are acknowledged manually after the
// handler ran; malformed messages are acknowledged and dropped with a
// log line so they never wedge the queue.
type Stream struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

// eventMessage is the JSON body of one queue message.
type eventMessage struct {
	Kind  string             `json:"kind"`
	Order wire.OrderSnapshot `json:"order"`
}

// NewStream dials the broker and declares the durable event queue.
func NewStream(url, queue string, logger *slog.Logger) (*Stream, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &Stream{
		conn:   conn,
		ch:     ch,
		queue:  queue,
		logger: logger.With("component", "event-stream"),
	}, nil
}

// Subscribe starts consuming events and invoking the handler for each
// decoded one, sequentially, until the returned stop function is called
// or the context is cancelled.
func (s *Stream) Subscribe(ctx context.Context, handler func(ports.OrderEvent)) (func(), error) {
	deliveries, err := s.ch.Consume(s.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume queue %s: %w", s.queue, err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	go s.consume(streamCtx, deliveries, handler)
	return cancel, nil
}

// Close shuts down the channel and the connection.
func (s *Stream) Close() {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *Stream) consume(ctx context.Context, deliveries <-chan amqp.Delivery, handler func(ports.OrderEvent)) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				s.logger.InfoContext(ctx, "delivery channel closed")
				return
			}

			event, err := decodeEvent(delivery.Body)
			if err != nil {
				s.logger.WarnContext(ctx, "malformed event dropped", "error", err)
				_ = delivery.Ack(false)
				continue
			}

			handler(event)
			if err = delivery.Ack(false); err != nil {
				s.logger.ErrorContext(ctx, "event ack failed", "error", err)
			}
		}
	}
}

func decodeEvent(body []byte) (ports.OrderEvent, error) {
	var message eventMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return ports.OrderEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}

	kind := ports.EventKind(message.Kind)
	switch kind {
	case ports.EventCreated, ports.EventUpdated, ports.EventRemoved:
	default:
		return ports.OrderEvent{}, fmt.Errorf("unknown event kind %q", message.Kind)
	}

	o, err := message.Order.ToDomain()
	if err != nil {
		return ports.OrderEvent{}, fmt.Errorf("restore order snapshot: %w", err)
	}

	return ports.OrderEvent{Kind: kind, Order: o}, nil
}

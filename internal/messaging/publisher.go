package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"foodcourier/internal/logger"
	"foodcourier/internal/models"
)

// EventEnvelope is the wire format for a dispatched domain event.
type EventEnvelope struct {
	EventID    string                 `json:"event_id"`
	Kind       string                 `json:"kind"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// Publisher dispatches domain events to the events exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishEvent serializes the event's active variant and publishes it to
// the order_events fanout exchange.
func (p *Publisher) PublishEvent(ctx context.Context, event models.Event) error {
	// Check if connection is alive
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	envelope := EventEnvelope{
		EventID:    uuid.NewString(),
		Kind:       event.Kind(),
		OccurredAt: time.Now().UTC(),
		Payload:    event.Payload(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: 2, // persistent
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		EventsExchange, // exchange
		"",             // routing key (ignored for fanout)
		false,          // mandatory
		false,          // immediate
		publishing,
	)

	if err != nil {
		p.logger.Error("event_publish_failed",
			fmt.Sprintf("Failed to publish %s event", event.Kind()),
			"", err, map[string]interface{}{
				"kind":     event.Kind(),
				"event_id": envelope.EventID,
			})
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event_published",
		fmt.Sprintf("Published %s event", event.Kind()),
		"", map[string]interface{}{
			"kind":         event.Kind(),
			"event_id":     envelope.EventID,
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}

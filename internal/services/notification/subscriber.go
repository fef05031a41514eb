// Package notification consumes dispatched order events and renders the
// customer-facing notification for each. It stands in for an outbound
// email/SMS sender: messages go to stdout plus the structured log.
package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"foodcourier/internal/logger"
	"foodcourier/internal/messaging"
)

// eventConsumer is the slice of messaging.Consumer the subscriber needs.
type eventConsumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber consumes the notifications queue bound to the order events
// exchange.
type Subscriber struct {
	consumer eventConsumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a notification subscriber.
func NewSubscriber(consumer eventConsumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start consumes events until the context ends or a shutdown signal
// arrives.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleEvent); isConsumerFailure(err) {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// isConsumerFailure distinguishes a broken consumer from a clean stop: a
// context cancellation is the shutdown path, not a failure.
func isConsumerFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// handleEvent parses one event envelope and renders its notification.
// Unknown kinds are acked and skipped so a newer publisher does not wedge
// the queue.
func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var envelope messaging.EventEnvelope
	if err := messaging.ParseMessage(body, &envelope); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse event envelope", requestID, err, nil)
		return fmt.Errorf("failed to parse event: %w", err)
	}

	s.logger.Debug("event_received", "Received order event", requestID, map[string]interface{}{
		"event_id": envelope.EventID,
		"kind":     envelope.Kind,
	})

	message, ok := s.formatNotification(&envelope)
	if !ok {
		s.logger.Info("event_skipped", "No notification for event kind", requestID, map[string]interface{}{
			"event_id": envelope.EventID,
			"kind":     envelope.Kind,
		})
		return nil
	}

	fmt.Println(message)

	s.logger.Info("notification_sent", "Notification rendered", requestID, map[string]interface{}{
		"event_id": envelope.EventID,
		"kind":     envelope.Kind,
	})
	return nil
}

// formatNotification renders the customer-facing message for an event.
func (s *Subscriber) formatNotification(envelope *messaging.EventEnvelope) (string, bool) {
	timestamp := envelope.OccurredAt.Format("2006-01-02 15:04:05")

	switch envelope.Kind {
	case "OrderCreated":
		return fmt.Sprintf(
			"📧 [%s] To %v: Hi %v, thanks for your order! Order #%v has been received. Your total is $%v.",
			timestamp,
			envelope.Payload["recipient"],
			envelope.Payload["first_name"],
			envelope.Payload["order_id"],
			envelope.Payload["order_total"],
		), true
	case "OrderStatusUpdated":
		return fmt.Sprintf(
			"📋 [%s] Order #%v is now '%v'.",
			timestamp,
			envelope.Payload["order_id"],
			envelope.Payload["status"],
		), true
	default:
		return "", false
	}
}

func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourier/internal/logger"
	"foodcourier/internal/messaging"
)

type fakeConsumer struct {
	err    error
	closed bool
}

func (f *fakeConsumer) StartConsuming(ctx context.Context, handler messaging.MessageHandler) error {
	return f.err
}

func (f *fakeConsumer) Close() error {
	f.closed = true
	return nil
}

func TestIsConsumerFailure(t *testing.T) {
	assert.False(t, isConsumerFailure(nil))
	assert.False(t, isConsumerFailure(context.Canceled))
	assert.False(t, isConsumerFailure(fmt.Errorf("consume loop: %w", context.Canceled)))
	assert.True(t, isConsumerFailure(errors.New("broker unreachable")))
}

func TestStart_ContextCancellationIsCleanExit(t *testing.T) {
	sub := NewSubscriber(&fakeConsumer{err: context.Canceled}, logger.New("notification-test"))

	assert.NoError(t, sub.Start(context.Background()))
}

func envelopeBody(t *testing.T, kind string, payload map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(messaging.EventEnvelope{
		EventID:    "evt-1",
		Kind:       kind,
		OccurredAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		Payload:    payload,
	})
	require.NoError(t, err)
	return body
}

func TestHandleEvent_OrderCreatedRendersConfirmation(t *testing.T) {
	sub := NewSubscriber(&fakeConsumer{}, logger.New("notification-test"))

	body := envelopeBody(t, "OrderCreated", map[string]interface{}{
		"order_id":    float64(42),
		"recipient":   "brian@example.com",
		"first_name":  "Brian",
		"order_total": "14.24",
	})

	assert.NoError(t, sub.handleEvent(context.Background(), body))

	message, ok := sub.formatNotification(&messaging.EventEnvelope{
		Kind: "OrderCreated",
		Payload: map[string]interface{}{
			"order_id":    float64(42),
			"recipient":   "brian@example.com",
			"first_name":  "Brian",
			"order_total": "14.24",
		},
	})
	require.True(t, ok)
	assert.Contains(t, message, "brian@example.com")
	assert.Contains(t, message, "thanks for your order")
	assert.Contains(t, message, "$14.24")
}

func TestHandleEvent_UnknownKindIsSkippedNotFailed(t *testing.T) {
	sub := NewSubscriber(&fakeConsumer{}, logger.New("notification-test"))

	body := envelopeBody(t, "OrderArchived", map[string]interface{}{"order_id": float64(7)})

	assert.NoError(t, sub.handleEvent(context.Background(), body))
}

func TestHandleEvent_MalformedBodyErrors(t *testing.T) {
	sub := NewSubscriber(&fakeConsumer{}, logger.New("notification-test"))

	assert.Error(t, sub.handleEvent(context.Background(), []byte("{not json")))
}

func TestFormatNotification_StatusUpdate(t *testing.T) {
	sub := NewSubscriber(&fakeConsumer{}, logger.New("notification-test"))

	message, ok := sub.formatNotification(&messaging.EventEnvelope{
		Kind:    "OrderStatusUpdated",
		Payload: map[string]interface{}{"order_id": float64(42), "status": "enroute"},
	})

	require.True(t, ok)
	assert.Contains(t, message, "Order #42")
	assert.Contains(t, message, "'enroute'")
}

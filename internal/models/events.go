package models

import "github.com/shopspring/decimal"

// Event is a domain event queued on a unit of work and dispatched after a
// successful commit. Each kind carries its own typed payload; dispatch
// serializes the active variant.
type Event interface {
	Kind() string
	Payload() map[string]interface{}
}

// OrderCreatedEvent is emitted when an order is persisted. The recipient
// fields drive the customer confirmation notification.
type OrderCreatedEvent struct {
	OrderID   int64
	Recipient string
	FirstName string
	Total     decimal.Decimal
}

func (OrderCreatedEvent) Kind() string { return "OrderCreated" }

func (e OrderCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"order_id":    e.OrderID,
		"recipient":   e.Recipient,
		"first_name":  e.FirstName,
		"order_total": e.Total,
	}
}

// OrderStatusUpdatedEvent is emitted when an order changes status.
type OrderStatusUpdatedEvent struct {
	OrderID int64
	Status  OrderStatus
}

func (OrderStatusUpdatedEvent) Kind() string { return "OrderStatusUpdated" }

func (e OrderStatusUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"order_id": e.OrderID,
		"status":   string(e.Status),
	}
}

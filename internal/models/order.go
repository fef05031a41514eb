package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"foodcourier/internal/pricing"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusEnroute        OrderStatus = "enroute"
	StatusDelivered      OrderStatus = "delivered"
)

// AllOrderStatuses enumerates the accepted statuses in lifecycle order.
// Status updates are single-step writes by an external caller; any member
// of the set is an accepted target. The engine does not enforce that
// transitions follow lifecycle order, which leaves room for manual
// overrides by dispatch staff.
var AllOrderStatuses = []OrderStatus{
	StatusNew,
	StatusPreparing,
	StatusReadyForPickup,
	StatusEnroute,
	StatusDelivered,
}

// OrderStatusNames returns the status tokens as strings.
func OrderStatusNames() []string {
	names := make([]string, len(AllOrderStatuses))
	for i, s := range AllOrderStatuses {
		names[i] = string(s)
	}
	return names
}

// ParseOrderStatus validates a raw status token against the enumerated set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, s := range AllOrderStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", ErrInvalidOrderState(raw)
}

// Customer is the customer snapshot captured at order time. It is owned by
// the order, not a reference to a mutable customer entity.
type Customer struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Zip         string `json:"zip" binding:"required"`
}

// OrderAddOnRequest names an add-on requested under a line item.
type OrderAddOnRequest struct {
	Name string `json:"name" binding:"required"`
}

// OrderItemRequest is one line item as submitted by the client: a menu item
// name, an optional size, and optional add-on names.
type OrderItemRequest struct {
	Name   string              `json:"name" binding:"required"`
	Size   string              `json:"size,omitempty"`
	AddOns []OrderAddOnRequest `json:"addons,omitempty" binding:"omitempty,dive"`
}

func (r OrderItemRequest) asDetails() map[string]interface{} {
	details := map[string]interface{}{"name": r.Name}
	if r.Size != "" {
		details["size"] = r.Size
	}
	return details
}

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	Customer    Customer           `json:"customer" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryFee decimal.Decimal    `json:"delivery_fee"`
}

// UpdateOrderRequest is the payload for PUT /orders/{id}.
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// Order is a customer order. Items holds the originally-submitted request
// structure verbatim for audit/replay; the monetary fields are resolved at
// composition time and never recomputed from the live catalog, so later
// menu price changes do not affect a placed order.
type Order struct {
	ID          int64              `json:"id"`
	Customer    Customer           `json:"customer"`
	Items       []OrderItemRequest `json:"items"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	DeliveryFee decimal.Decimal    `json:"delivery_fee"`
	Status      OrderStatus        `json:"status"`
	CreatedAt   time.Time          `json:"created"`
	UpdatedAt   time.Time          `json:"updated"`
}

// Total is subtotal + tax + delivery fee, computed on read.
func (o *Order) Total() decimal.Decimal {
	return pricing.Total(o.Subtotal, o.Tax, o.DeliveryFee)
}

// MarshalJSON serializes the order with the derived total attached.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Total decimal.Decimal `json:"total"`
	}{
		alias: alias(o),
		Total: o.Total(),
	})
}

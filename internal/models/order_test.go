package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"new", StatusNew},
		{"preparing", StatusPreparing},
		{"ready_for_pickup", StatusReadyForPickup},
		{"enroute", StatusEnroute},
		{"delivered", StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, err := ParseOrderStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestParseOrderStatus_RejectsUnknownToken(t *testing.T) {
	_, err := ParseOrderStatus("cooked")

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidOrderState, appErr.Code)
	assert.Equal(t, "cooked", appErr.Details["status"])
	assert.Equal(t, OrderStatusNames(), appErr.Details["must_be_one_of"])
}

func TestParseOrderStatus_IsCaseSensitive(t *testing.T) {
	_, err := ParseOrderStatus("New")
	assert.Error(t, err)
}

func TestOrderMarshalJSON_AttachesDerivedTotal(t *testing.T) {
	order := Order{
		ID:          42,
		Subtotal:    decimal.RequireFromString("8.99"),
		Tax:         decimal.RequireFromString("2.25"),
		DeliveryFee: decimal.RequireFromString("3.00"),
		Status:      StatusNew,
	}

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "14.24", decoded["total"])
	assert.Equal(t, "8.99", decoded["subtotal"])
	assert.Equal(t, "new", decoded["status"])
}

func TestValidDriverStatus(t *testing.T) {
	assert.True(t, ValidDriverStatus("available"))
	assert.True(t, ValidDriverStatus("delivering"))
	assert.True(t, ValidDriverStatus("offline"))
	assert.False(t, ValidDriverStatus("on_break"))
	assert.False(t, ValidDriverStatus(""))
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxForZip(t *testing.T) {
	tests := []struct {
		name string
		zip  string
		want string
	}{
		{name: "known zip 80523", zip: "80523", want: "2.25"},
		{name: "known zip 80534", zip: "80534", want: "5.25"},
		{name: "known zip 12345", zip: "12345", want: "3.25"},
		{name: "unknown zip is zero, not an error", zip: "99999", want: "0"},
		{name: "empty zip is zero", zip: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxForZip(tt.zip)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"TaxForZip(%q) = %s, want %s", tt.zip, got, tt.want)
		})
	}
}

func TestTotal(t *testing.T) {
	subtotal := decimal.RequireFromString("8.99")
	tax := decimal.RequireFromString("0")
	fee := decimal.RequireFromString("3.00")

	total := Total(subtotal, tax, fee)
	assert.Equal(t, "11.99", total.StringFixed(2))
}

func TestTotal_NoRoundingDrift(t *testing.T) {
	// Repeated accumulation of cents must stay exact.
	sum := decimal.Zero
	cent := decimal.RequireFromString("0.01")
	for i := 0; i < 1000; i++ {
		sum = sum.Add(cent)
	}
	total := Total(sum, decimal.Zero, decimal.Zero)
	assert.Equal(t, "10.00", total.StringFixed(2))
}

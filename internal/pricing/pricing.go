// Package pricing holds the money arithmetic for orders. All values are
// fixed-point decimals with two fractional digits; binary floats never
// enter money handling.
package pricing

import "github.com/shopspring/decimal"

// taxByZip is the flat tax lookup keyed by postal code. Codes outside the
// table carry zero tax; absence of tax data is not an error.
var taxByZip = map[string]decimal.Decimal{
	"80523": decimal.RequireFromString("2.25"),
	"80534": decimal.RequireFromString("5.25"),
	"12345": decimal.RequireFromString("3.25"),
}

// TaxForZip returns the tax amount for a postal code, zero when unknown.
func TaxForZip(zip string) decimal.Decimal {
	if tax, ok := taxByZip[zip]; ok {
		return tax
	}
	return decimal.Zero
}

// Total is the pure sum of an order's monetary components.
func Total(subtotal, tax, deliveryFee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(deliveryFee)
}

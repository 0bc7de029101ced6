// Package money converts between gateway amounts (integer cents) and the
// currency values stored on platform orders.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CentsToFloat converts an amount in cents into currency units.
func CentsToFloat(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// FloatToCents converts a currency value into cents, rounding half away from zero.
func FloatToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// Plain renders cents in the shortest decimal form ("10.5", "10").
func Plain(cents int64) string {
	return CentsToFloat(cents).String()
}

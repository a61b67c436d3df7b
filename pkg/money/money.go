// Package money provides fixed-point monetary arithmetic.
//
// All amounts are stored as int64 cents, so every value is exact at two
// decimal places and repeated recomputation of line totals cannot drift.
// Floating point only appears at the JSON/API boundary.
package money

import "math"

// Amount is a monetary value in cents.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromFloat converts a decimal value (e.g. 19.99) to cents, rounding
// half away from zero to the nearest cent.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Float64 returns the amount as a decimal value for display.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// Multiply returns unit price * quantity.
func Multiply(unitPrice Amount, quantity int) Amount {
	return unitPrice * Amount(quantity)
}

// Sum returns the total of the given amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// ApplyRate applies a percentage rate (e.g. 10 for 10%) to an amount,
// rounding half up to the nearest cent.
func ApplyRate(a Amount, ratePercent float64) Amount {
	return Amount(math.Round(float64(a) * ratePercent / 100))
}

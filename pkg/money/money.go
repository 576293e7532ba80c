// Package money holds the integer-cent arithmetic used by the ledger and
// the squares engine. Amounts are stored as int64 cents everywhere; decimal
// math is applied only when a fraction or fee multiplies an amount, and the
// result is rounded half-up to whole cents exactly once.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the share of every squares payout kept by the house.
const PlatformFeeRate = 0.03

// Fraction returns amount scaled by the given fraction, rounded half-up to
// whole cents.
func Fraction(amount int64, fraction float64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(fraction)).
		Round(0).
		IntPart()
}

// ApplyPlatformFee returns the net amount after deducting the platform fee
// from gross, rounded half-up to whole cents.
func ApplyPlatformFee(gross int64) int64 {
	return decimal.NewFromInt(gross).
		Mul(decimal.NewFromFloat(1 - PlatformFeeRate)).
		Round(0).
		IntPart()
}

// FormatCents renders cents as a dollar string, e.g. 14550 -> "$145.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

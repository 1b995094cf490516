package utils

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to two decimal places, the scale documents are kept at.
// Rounding happens once, at a document's final total; intermediate sums stay exact.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// IsPositive2dp reports whether the amount is strictly positive and carries no
// more than two decimal places. The check compares values, not exponents, so
// a trailing-zero representation like 1.050 still passes.
func IsPositive2dp(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// FormatAmount formats an amount at document scale.
// Example: 12.3456 returns "12.35", 12 returns "12".
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(2).String()
}

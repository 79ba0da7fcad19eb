package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places used when displaying amounts.
const MoneyPrecision = 2

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

// FormatPercentage returns part as a percentage of total, e.g. "37.50".
// A zero total yields "0.00".
func FormatPercentage(part, total decimal.Decimal) string {
	if total.IsZero() {
		return FormatWithPrecision(decimal.Zero, MoneyPrecision)
	}
	return FormatWithPrecision(part.Div(total).Mul(decimal.NewFromInt(100)), MoneyPrecision)
}

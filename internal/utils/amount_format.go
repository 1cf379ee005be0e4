package utils

import (
	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places balances are displayed with.
const MinorUnits = 2

// FormatAmount renders an amount with a fixed number of decimal places.
// Example: 1500 returns "1500.00", 12.345 returns "12.35".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MinorUnits)
}

// ParseAmount parses operator input such as "250" or "99.95".
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

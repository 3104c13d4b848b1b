package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = money.USD

// ValidateCurrency reports whether code is an ISO 4217 currency known to go-money.
func ValidateCurrency(code string) error {
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// FormatCurrency formats an amount with the currency's symbol, grouping and minor units,
// for example $4,570,823.39. Unknown currencies fall back to "<amount> <code>".
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// FormatPercentage formats a whole-number percentage, trimming needless zeros.
func FormatPercentage(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

// FormatVariable formats an input value according to its unit.
func FormatVariable(value float64, unit, currency string) string {
	switch unit {
	case "dollars":
		return FormatCurrency(decimal.NewFromFloat(value), currency)
	case "percent":
		return FormatPercentage(value)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

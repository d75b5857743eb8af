// Package presenters renders report aggregates as chart figures, images,
// tables and documents. Nothing here recomputes or filters an aggregate.
package presenters

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "₹"

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount with the currency symbol, grouped
// thousands and two decimals: ₹52,000.00
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + CurrencySymbol + printer.Sprintf("%.2f", math.Abs(v))
	}
	return CurrencySymbol + printer.Sprintf("%.2f", v)
}

// FormatWholeCurrency renders an amount rounded to whole units: ₹52,000
func FormatWholeCurrency(v float64) string {
	if v < 0 {
		return "-" + CurrencySymbol + printer.Sprintf("%.0f", math.Abs(v))
	}
	return CurrencySymbol + printer.Sprintf("%.0f", v)
}

// FormatCount renders an integer with grouped thousands
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

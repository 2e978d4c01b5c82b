package analytics

import "github.com/shopspring/decimal"

const DefaultCurrencySymbol = "$"

// Formatter renders amounts for display.
type Formatter struct {
	Symbol string
}

func NewFormatter(symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{Symbol: symbol}
}

// Format returns the amount with two decimals after the currency symbol.
func (f Formatter) Format(d decimal.Decimal) string {
	return f.Symbol + d.StringFixed(2)
}

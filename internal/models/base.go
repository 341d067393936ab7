package models

import "github.com/shopspring/decimal"

// CashSymbol is the reserved symbol for uninvested cash. Its value is its
// quantity and it is never quoted.
const CashSymbol = "CASH"

// MoneyPlaces is the number of decimal places stored for prices, values,
// allocations and changes.
const MoneyPlaces = 2

func init() {
	// Serve decimals as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// IsCash reports whether symbol is the cash sentinel.
func IsCash(symbol string) bool {
	return symbol == CashSymbol
}

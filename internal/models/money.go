package models

import "github.com/shopspring/decimal"

// Persisted records keep amounts as plain JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

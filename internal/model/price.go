package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar represents one day of market data for a symbol.
// AdjClose is the adjusted close used for all valuations.
type PriceBar struct {
	Symbol   string          `json:"symbol"`
	Date     time.Time       `json:"date"`
	AdjClose decimal.Decimal `json:"adjClose"`
	Currency string          `json:"currency"`
}

// ExchangeRate represents a point-in-time conversion rate between two
// currencies. Rates are looked up by exact date; there is no fallback
// to a nearby date.
type ExchangeRate struct {
	Date         time.Time       `json:"date"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistSymbol represents a symbol tracked by the dashboard.
type WatchlistSymbol struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// WatchlistEntry represents a watchlist symbol enriched with its latest
// snapshot and day-over-day price movement for the summary view.
type WatchlistEntry struct {
	Symbol         string           `json:"symbol"`
	DisplayName    string           `json:"displayName,omitempty"`
	Latest         *DailySnapshot   `json:"latest,omitempty"`
	LastPrice      *decimal.Decimal `json:"lastPrice,omitempty"`
	PriceChange    *decimal.Decimal `json:"priceChange,omitempty"`
	PriceChangePct *decimal.Decimal `json:"priceChangePct,omitempty"`
}

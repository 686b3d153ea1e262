package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySnapshot is the per-day valuation of one symbol's open position.
// All monetary fields are expressed in the portfolio base currency.
// Snapshots are the only durable output of the valuation engine and are
// deleted and reinserted wholesale on every recomputation.
type DailySnapshot struct {
	Symbol              string          `json:"symbol"`
	Date                time.Time       `json:"date"`
	SharesOpen          decimal.Decimal `json:"sharesOpen"`
	MarketValue         decimal.Decimal `json:"marketValue"`
	CostBasisOpen       decimal.Decimal `json:"costBasisOpen"`
	UnrealizedPL        decimal.Decimal `json:"unrealizedPl"`
	RealizedPLToDate    decimal.Decimal `json:"realizedPlToDate"`
	HypoLiquidationPL   decimal.Decimal `json:"hypoLiquidationPl"`
	DayOpportunity      decimal.Decimal `json:"dayOpportunity"`
	PeakHypoPLToDate    decimal.Decimal `json:"peakHypoPlToDate"`
	DrawdownFromPeakPct decimal.Decimal `json:"drawdownFromPeakPct"`
}

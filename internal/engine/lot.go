package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is a discrete purchase of shares that retains its own cost basis until
// fully sold. The ID traces back to the opening transaction, which is what
// SPEC_ID sells reference.
type Lot struct {
	ID           string
	Quantity     decimal.Decimal
	CostPerShare decimal.Decimal // base currency, fees and taxes included
	OpenedAt     time.Time
}

// CostTotal returns the remaining cost basis of the lot (quantity x cost per share).
func (l Lot) CostTotal() decimal.Decimal {
	return l.Quantity.Mul(l.CostPerShare)
}

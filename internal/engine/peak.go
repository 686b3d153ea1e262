package engine

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// peakTracker maintains the running maximum of the hypothetical-liquidation
// curve. The peak is seeded with the first observed value rather than a
// sentinel minimum, so it is well defined from the first snapshot onward and
// non-decreasing by construction.
type peakTracker struct {
	seeded bool
	peak   decimal.Decimal
}

// update feeds the current hypothetical liquidation P/L into the tracker and
// returns the peak to date and the drawdown from that peak in percent.
// Drawdown is exactly zero whenever the peak is zero, avoiding a division by
// zero.
func (p *peakTracker) update(current decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if !p.seeded {
		p.peak = current
		p.seeded = true
	} else if current.GreaterThan(p.peak) {
		p.peak = current
	}

	drawdown := decimal.Zero
	if !p.peak.IsZero() {
		drawdown = current.Sub(p.peak).Div(p.peak).Mul(hundred)
	}
	return p.peak, drawdown
}

package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
)

// Ledger owns the set of open cost lots for one symbol within a single
// recomputation run. Lots are held as an ordered slice in arrival order
// (front = oldest) with explicit front/back removal, since sells frequently
// split a lot and reinsert the remainder at a specific end.
//
// A Ledger is not safe for concurrent use; each symbol's recomputation owns
// its own instance.
type Ledger struct {
	lots     []Lot
	realized decimal.Decimal
	oversell OversellMode
}

// NewLedger creates an empty ledger with the given oversell mode.
func NewLedger(oversell OversellMode) *Ledger {
	return &Ledger{oversell: oversell}
}

// Open appends a new lot to the ledger. Quantity and cost per share must be
// strictly positive.
func (l *Ledger) Open(lot Lot) error {
	if !lot.Quantity.IsPositive() || !lot.CostPerShare.IsPositive() {
		return fmt.Errorf("%w: quantity=%s costPerShare=%s",
			apperrors.ErrInvalidLot, lot.Quantity, lot.CostPerShare)
	}
	l.lots = append(l.lots, lot)
	return nil
}

// Close removes or reduces lots to satisfy the requested quantity under the
// given matching policy and returns the quantity actually closed together
// with the total cost removed from the ledger.
//
// In strict oversell mode a request that exceeds the closable quantity fails
// with ErrInsufficientShares before any lot is touched, so a failed close
// leaves the ledger unchanged. In lenient mode the close stops once lots are
// exhausted and the caller can detect the shortfall from the returned
// quantity.
//
// lotIDs is only consulted for SPEC_ID and identifies the opening
// transactions whose lots the sale may consume.
func (l *Ledger) Close(quantity decimal.Decimal, policy MatchPolicy, lotIDs []string) (decimal.Decimal, decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero, nil
	}

	var eligible func(Lot) bool
	switch policy {
	case FIFO, LIFO:
		eligible = func(Lot) bool { return true }
	case AverageCost:
		l.coalesce()
		eligible = func(Lot) bool { return true }
	case SpecID:
		if len(lotIDs) == 0 {
			return decimal.Zero, decimal.Zero, apperrors.ErrMissingLotIDs
		}
		allowed := make(map[string]bool, len(lotIDs))
		for _, id := range lotIDs {
			allowed[id] = true
		}
		eligible = func(lot Lot) bool { return allowed[lot.ID] }
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnknownLotPolicy, policy)
	}

	if l.oversell == OversellStrict {
		available := decimal.Zero
		for _, lot := range l.lots {
			if eligible(lot) {
				available = available.Add(lot.Quantity)
			}
		}
		if quantity.GreaterThan(available) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: requested %s, %s closable",
				apperrors.ErrInsufficientShares, quantity, available)
		}
	}

	closed := decimal.Zero
	costRemoved := decimal.Zero
	remaining := quantity

	next := l.frontIndex
	if policy == LIFO {
		next = l.backIndex
	}

	for remaining.IsPositive() {
		i, ok := next(eligible)
		if !ok {
			break
		}
		lot := l.lots[i]
		take := decimal.Min(lot.Quantity, remaining)
		costRemoved = costRemoved.Add(take.Mul(lot.CostPerShare))
		closed = closed.Add(take)
		remaining = remaining.Sub(take)

		lot.Quantity = lot.Quantity.Sub(take)
		if lot.Quantity.IsZero() {
			l.lots = append(l.lots[:i], l.lots[i+1:]...)
		} else {
			// Partial remainder keeps its position in the queue.
			l.lots[i] = lot
		}
	}

	return closed, costRemoved, nil
}

// frontIndex returns the index of the oldest eligible lot.
func (l *Ledger) frontIndex(eligible func(Lot) bool) (int, bool) {
	for i := range l.lots {
		if eligible(l.lots[i]) && l.lots[i].Quantity.IsPositive() {
			return i, true
		}
	}
	return 0, false
}

// backIndex returns the index of the newest eligible lot.
func (l *Ledger) backIndex(eligible func(Lot) bool) (int, bool) {
	for i := len(l.lots) - 1; i >= 0; i-- {
		if eligible(l.lots[i]) && l.lots[i].Quantity.IsPositive() {
			return i, true
		}
	}
	return 0, false
}

// coalesce collapses all open lots into a single lot carrying the blended
// average cost per share. The surviving lot keeps the identity of the oldest
// open lot. Used by the AVERAGE_COST policy.
func (l *Ledger) coalesce() {
	if len(l.lots) < 2 {
		return
	}
	shares := l.SharesOpen()
	merged := Lot{
		ID:           l.lots[0].ID,
		Quantity:     shares,
		CostPerShare: l.CostBasisOpen().Div(shares),
		OpenedAt:     l.lots[0].OpenedAt,
	}
	l.lots = l.lots[:0]
	l.lots = append(l.lots, merged)
}

// AddRealized accumulates realized profit/loss from a completed sale.
func (l *Ledger) AddRealized(pnl decimal.Decimal) {
	l.realized = l.realized.Add(pnl)
}

// RealizedPL returns the realized profit/loss accumulated so far.
func (l *Ledger) RealizedPL() decimal.Decimal {
	return l.realized
}

// SharesOpen returns the total quantity across all open lots.
func (l *Ledger) SharesOpen() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.Quantity)
	}
	return total
}

// CostBasisOpen returns the total cost basis of all open lots.
func (l *Ledger) CostBasisOpen() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.CostTotal())
	}
	return total
}

// LotCount returns the number of open lots.
func (l *Ledger) LotCount() int {
	return len(l.lots)
}

// Lots returns a copy of the open lots in arrival order.
func (l *Ledger) Lots() []Lot {
	out := make([]Lot, len(l.lots))
	copy(out, l.lots)
	return out
}

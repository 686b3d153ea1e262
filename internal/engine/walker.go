// Package engine implements the lot-based portfolio accounting and daily
// valuation core. Given one symbol's transactions and daily price series it
// reconstructs, day by day, the open position, its cost basis under a
// configurable tax-lot matching policy, realized and unrealized P/L, the
// hypothetical-liquidation P/L curve, and the peak/drawdown/opportunity
// metrics derived from it.
//
// The engine is a pure fold over pre-fetched in-memory inputs: it holds no
// state between invocations and performs no I/O, which makes recomputation
// per symbol embarrassingly parallel at the caller's discretion. All money
// arithmetic uses shopspring/decimal; binary floating point would accumulate
// unacceptable drift over years of daily compounding.
package engine

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

var bpsDivisor = decimal.NewFromInt(10000)

// Options configures one recomputation run.
type Options struct {
	// Policy selects the tax-lot matching policy. Defaults to FIFO.
	Policy MatchPolicy

	// Oversell controls sells that exceed the open quantity. Defaults to strict.
	Oversell OversellMode

	// BaseCurrency is the single reporting currency of all snapshot fields.
	BaseCurrency string

	// SellFeeBps and SellFeeFlat estimate the cost of liquidating the open
	// position: basis points of market value plus a flat amount.
	SellFeeBps  decimal.Decimal
	SellFeeFlat decimal.Decimal

	// Rates converts transaction and price currencies into the base currency.
	// When nil, all inputs are assumed to already be in the base currency.
	Rates RateSource
}

func (o Options) policy() MatchPolicy {
	if o.Policy == "" {
		return FIFO
	}
	return o.Policy
}

func (o Options) oversell() OversellMode {
	if o.Oversell == "" {
		return OversellStrict
	}
	return o.Oversell
}

// rate returns the conversion factor into the base currency for the given
// date, or 1 when no rate source is configured.
func (o Options) rate(day time.Time, currency string) (decimal.Decimal, error) {
	if o.Rates == nil || currency == "" || strings.EqualFold(currency, o.BaseCurrency) {
		return decimal.NewFromInt(1), nil
	}
	return o.Rates.Rate(day, currency, o.BaseCurrency)
}

// BuildDailySnapshots computes the ordered-by-date snapshot sequence for one
// symbol from its full transaction list and daily price series.
//
// The walk covers the union of price dates and transaction dates so that
// transactions dated on non-trading days still mutate the ledger, but a
// snapshot is only emitted for dates that carry a price. Within a date,
// transactions apply in ascending ID order, which makes the walk fully
// deterministic: identical inputs always produce an identical sequence.
//
// Any error (missing exchange rate, strict-mode oversell, invalid lot) aborts
// the whole run with no partial output; the caller decides whether to retry
// or surface it.
func BuildDailySnapshots(symbol string, transactions []model.Transaction, prices []model.PriceBar, opts Options) ([]model.DailySnapshot, error) {
	priceByDay := make(map[time.Time]model.PriceBar, len(prices))
	for _, bar := range prices {
		priceByDay[midnightUTC(bar.Date)] = bar
	}

	txByDay := make(map[time.Time][]model.Transaction)
	for _, tx := range transactions {
		day := midnightUTC(tx.Date)
		txByDay[day] = append(txByDay[day], tx)
	}

	days := make([]time.Time, 0, len(priceByDay)+len(txByDay))
	seen := make(map[time.Time]bool, len(priceByDay)+len(txByDay))
	for day := range priceByDay {
		seen[day] = true
		days = append(days, day)
	}
	for day := range txByDay {
		if !seen[day] {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	ledger := NewLedger(opts.oversell())
	tracker := &peakTracker{}
	snapshots := make([]model.DailySnapshot, 0, len(priceByDay))

	for _, day := range days {
		dayTxs := txByDay[day]
		sort.Slice(dayTxs, func(i, j int) bool { return dayTxs[i].ID < dayTxs[j].ID })

		for _, tx := range dayTxs {
			if err := applyTransaction(ledger, tx, opts); err != nil {
				return nil, err
			}
		}

		bar, ok := priceByDay[day]
		if !ok {
			// Transaction-only date: the ledger moved but there is no price
			// to value it against, so no snapshot is emitted.
			continue
		}

		snap, err := valueDay(symbol, day, bar, ledger, tracker, opts)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}

// applyTransaction mutates the ledger with one day's transaction. BUY opens a
// lot, SELL closes lots under the configured policy and realizes the P/L.
// DIVIDEND, FEE and SPLIT are deliberate no-ops: the intended accounting for
// them is unresolved upstream, so they are skipped loudly rather than guessed.
func applyTransaction(ledger *Ledger, tx model.Transaction, opts Options) error {
	switch tx.Type {
	case model.TransactionBuy, model.TransactionSell:
	default:
		log.Printf("snapshot walk: skipping unhandled %s transaction %s for %s", tx.Type, tx.ID, tx.Symbol)
		return nil
	}

	rate, err := opts.rate(midnightUTC(tx.Date), tx.Currency)
	if err != nil {
		return err
	}

	qty := tx.Quantity.Abs()
	gross := qty.Mul(tx.Price).Mul(rate)
	feeAndTax := tx.Fee.Add(tx.Tax).Mul(rate)

	if tx.Type == model.TransactionBuy {
		cost := gross.Add(feeAndTax)
		return ledger.Open(Lot{
			ID:           tx.ID,
			Quantity:     qty,
			CostPerShare: cost.Div(qty),
			OpenedAt:     midnightUTC(tx.Date),
		})
	}

	closed, costRemoved, err := ledger.Close(qty, opts.policy(), tx.LotIDs)
	if err != nil {
		return err
	}
	// Proceeds are booked for the quantity actually closed; a lenient-mode
	// truncation never realizes P/L for shares that were never held.
	proceeds := closed.Mul(tx.Price).Mul(rate).Sub(feeAndTax)
	ledger.AddRealized(proceeds.Sub(costRemoved))
	return nil
}

// valueDay derives the snapshot metrics for one priced day from current
// ledger state.
func valueDay(symbol string, day time.Time, bar model.PriceBar, ledger *Ledger, tracker *peakTracker, opts Options) (model.DailySnapshot, error) {
	rate, err := opts.rate(day, bar.Currency)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	priceBase := bar.AdjClose.Mul(rate)

	shares := ledger.SharesOpen()
	costBasis := ledger.CostBasisOpen()
	realized := ledger.RealizedPL()

	marketValue := shares.Mul(priceBase)
	unrealized := marketValue.Sub(costBasis)

	hypo := realized
	dayOpportunity := decimal.Zero
	if shares.IsPositive() {
		feeFactor := decimal.NewFromInt(1).Sub(opts.SellFeeBps.Div(bpsDivisor))
		proceeds := marketValue.Mul(feeFactor).Sub(opts.SellFeeFlat)
		if proceeds.IsNegative() {
			proceeds = decimal.Zero
		}
		hypo = realized.Add(proceeds.Sub(costBasis))
		dayOpportunity = decimal.Max(decimal.Zero, hypo.Sub(realized))
	}

	peak, drawdown := tracker.update(hypo)

	return model.DailySnapshot{
		Symbol:              symbol,
		Date:                day,
		SharesOpen:          shares,
		MarketValue:         marketValue,
		CostBasisOpen:       costBasis,
		UnrealizedPL:        unrealized,
		RealizedPLToDate:    realized,
		HypoLiquidationPL:   hypo,
		DayOpportunity:      dayOpportunity,
		PeakHypoPLToDate:    peak,
		DrawdownFromPeakPct: drawdown,
	}, nil
}

// midnightUTC normalizes a timestamp to its calendar day in UTC, matching
// the date granularity of stored prices and snapshots.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

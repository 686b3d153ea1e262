package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
)

// RateSource supplies point-in-time currency conversion rates. Rate returns
// the multiplier converting an amount in from-currency to to-currency on the
// given date. Implementations must return exactly 1 when the currencies
// match and fail with apperrors.ErrExchangeRateNotFound when no entry exists
// for the exact date and pair; there is no fallback to a nearby date.
type RateSource interface {
	Rate(day time.Time, from, to string) (decimal.Decimal, error)
}

type rateKey struct {
	day  string
	from string
	to   string
}

// RateTable is an in-memory RateSource backed by a map of exact
// (date, from, to) entries.
type RateTable struct {
	rates map[rateKey]decimal.Decimal
}

// NewRateTable creates an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[rateKey]decimal.Decimal)}
}

// Add records a conversion rate for the exact date and currency pair.
func (t *RateTable) Add(day time.Time, from, to string, rate decimal.Decimal) {
	t.rates[makeRateKey(day, from, to)] = rate
}

// Rate implements RateSource.
func (t *RateTable) Rate(day time.Time, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t.rates[makeRateKey(day, from, to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s->%s on %s",
			apperrors.ErrExchangeRateNotFound, strings.ToUpper(from), strings.ToUpper(to), day.Format("2006-01-02"))
	}
	return rate, nil
}

func makeRateKey(day time.Time, from, to string) rateKey {
	return rateKey{
		day:  day.UTC().Format("2006-01-02"),
		from: strings.ToUpper(from),
		to:   strings.ToUpper(to),
	}
}

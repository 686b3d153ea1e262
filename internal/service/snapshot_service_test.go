package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/testutil"
)

// TestSnapshotService_RecomputeSymbol tests the full recompute path: load data
// from the database, run the valuation walk, and atomically store the series.
//
// WHY: Recompute is the core write path of the system. Every transaction or
// price mutation funnels through it, so the stored series must exactly match
// the engine's output and replace any previous series.
func TestSnapshotService_RecomputeSymbol(t *testing.T) {
	ctx := context.Background()

	t.Run("stores one snapshot per priced date with correct metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-03", "11")

		if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
			t.Fatalf("RecomputeSymbol() returned unexpected error: %v", err)
		}

		snaps, err := svc.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
		}

		first, second := snaps[0], snaps[1]
		if !first.SharesOpen.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected 100 shares open, got %s", first.SharesOpen)
		}
		if !first.CostBasisOpen.Equal(testutil.MustDecimal(t, "1000")) {
			t.Errorf("Expected cost basis 1000, got %s", first.CostBasisOpen)
		}
		if !first.HypoLiquidationPL.IsZero() {
			t.Errorf("Expected zero hypothetical P/L at cost, got %s", first.HypoLiquidationPL)
		}

		if !second.MarketValue.Equal(testutil.MustDecimal(t, "1100")) {
			t.Errorf("Expected market value 1100, got %s", second.MarketValue)
		}
		if !second.UnrealizedPL.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected unrealized P/L 100, got %s", second.UnrealizedPL)
		}
		if !second.DayOpportunity.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected day opportunity 100, got %s", second.DayOpportunity)
		}
		if !second.PeakHypoPLToDate.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected peak 100, got %s", second.PeakHypoPLToDate)
		}
	})

	t.Run("replaces the previous series instead of appending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")

		if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
			t.Fatalf("First recompute failed: %v", err)
		}
		if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
			t.Fatalf("Second recompute failed: %v", err)
		}

		snaps, err := svc.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 {
			t.Errorf("Expected 1 snapshot after double recompute, got %d", len(snaps))
		}
	})

	t.Run("strict oversell aborts and leaves the stored series untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")
		if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
			t.Fatalf("Initial recompute failed: %v", err)
		}

		// A sell larger than the open position makes the series invalid.
		testutil.CreateSell(t, db, "ACME", "2024-01-03", "150", "11")
		testutil.CreatePrice(t, db, "ACME", "2024-01-03", "11")

		err := svc.RecomputeSymbol(ctx, "ACME")
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares, got %v", err)
		}

		snaps, err := svc.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 {
			t.Errorf("Expected previous series of 1 snapshot to survive, got %d", len(snaps))
		}
	})

	t.Run("converts foreign currency inputs through exact-date rates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.NewTransaction("ASML").WithDate("2024-01-02").WithQuantity("10").WithPrice("100").WithCurrency("EUR").Build(t, db)
		testutil.CreatePriceInCurrency(t, db, "ASML", "2024-01-02", "100", "EUR")
		testutil.CreateExchangeRate(t, db, "2024-01-02", "EUR", "USD", "1.1")

		if err := svc.RecomputeSymbol(ctx, "ASML"); err != nil {
			t.Fatalf("RecomputeSymbol() returned unexpected error: %v", err)
		}

		snaps, err := svc.GetTimeline("ASML", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snaps))
		}
		if !snaps[0].MarketValue.Equal(testutil.MustDecimal(t, "1100")) {
			t.Errorf("Expected market value 1100 in base currency, got %s", snaps[0].MarketValue)
		}
	})

	t.Run("missing exchange rate aborts the recompute", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.NewTransaction("ASML").WithDate("2024-01-02").WithQuantity("10").WithPrice("100").WithCurrency("EUR").Build(t, db)
		testutil.CreatePriceInCurrency(t, db, "ASML", "2024-01-02", "100", "EUR")

		err := svc.RecomputeSymbol(ctx, "ASML")
		if !errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			t.Fatalf("Expected ErrExchangeRateNotFound, got %v", err)
		}
	})
}

// TestSnapshotService_RecomputeAll tests the full-watchlist recompute.
//
// WHY: The nightly job and the internal recompute endpoint both rebuild every
// tracked symbol. One bad symbol must not prevent healthy symbols from being
// refreshed, and the error must still surface to the caller.
func TestSnapshotService_RecomputeAll(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes every watchlist symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		for _, symbol := range []string{"ACME", "GLOBEX"} {
			testutil.CreateWatchlistSymbol(t, db, symbol)
			testutil.CreateBuy(t, db, symbol, "2024-01-02", "10", "5")
			testutil.CreatePrice(t, db, symbol, "2024-01-02", "5")
		}

		if err := svc.RecomputeAll(ctx); err != nil {
			t.Fatalf("RecomputeAll() returned unexpected error: %v", err)
		}

		for _, symbol := range []string{"ACME", "GLOBEX"} {
			snaps, err := svc.GetTimeline(symbol, "", "")
			if err != nil {
				t.Fatalf("GetTimeline(%s) returned unexpected error: %v", symbol, err)
			}
			if len(snaps) != 1 {
				t.Errorf("Expected 1 snapshot for %s, got %d", symbol, len(snaps))
			}
		}
	})

	t.Run("a failing symbol does not block the others", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.CreateWatchlistSymbol(t, db, "GOOD")
		testutil.CreateBuy(t, db, "GOOD", "2024-01-02", "10", "5")
		testutil.CreatePrice(t, db, "GOOD", "2024-01-02", "5")

		testutil.CreateWatchlistSymbol(t, db, "BAD")
		testutil.CreateSell(t, db, "BAD", "2024-01-02", "10", "5")
		testutil.CreatePrice(t, db, "BAD", "2024-01-02", "5")

		err := svc.RecomputeAll(ctx)
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares from BAD, got %v", err)
		}

		snaps, err := svc.GetTimeline("GOOD", "", "")
		if err != nil {
			t.Fatalf("GetTimeline(GOOD) returned unexpected error: %v", err)
		}
		if len(snaps) != 1 {
			t.Errorf("Expected GOOD to be recomputed despite BAD failing, got %d snapshots", len(snaps))
		}
	})
}

// TestSnapshotService_TopOpportunities tests the missed-opportunity ranking.
//
// WHY: Opportunity values are persisted as TEXT, so the ranking must compare
// them numerically. A lexicographic comparison would rank "9" above "10".
func TestSnapshotService_TopOpportunities(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)

	testutil.CreateBuy(t, db, "ACME", "2024-01-02", "1", "1")
	testutil.CreatePrice(t, db, "ACME", "2024-01-02", "1")
	testutil.CreatePrice(t, db, "ACME", "2024-01-03", "10")
	testutil.CreatePrice(t, db, "ACME", "2024-01-04", "11")

	if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
		t.Fatalf("RecomputeSymbol() returned unexpected error: %v", err)
	}

	top, err := svc.TopOpportunities("ACME", 2)
	if err != nil {
		t.Fatalf("TopOpportunities() returned unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 opportunities, got %d", len(top))
	}
	if !top[0].DayOpportunity.Equal(testutil.MustDecimal(t, "10")) {
		t.Errorf("Expected top opportunity 10, got %s", top[0].DayOpportunity)
	}
	if !top[1].DayOpportunity.Equal(testutil.MustDecimal(t, "9")) {
		t.Errorf("Expected second opportunity 9, got %s", top[1].DayOpportunity)
	}
}

// TestSnapshotService_GetLatest tests latest-snapshot retrieval.
//
// WHY: The dashboard summary relies on the latest snapshot per symbol; a
// missing series must map to the typed not-found error rather than a zero row.
func TestSnapshotService_GetLatest(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)

	if _, err := svc.GetLatest("NONE"); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound for unknown symbol, got %v", err)
	}

	testutil.CreateBuy(t, db, "ACME", "2024-01-02", "10", "5")
	testutil.CreatePrice(t, db, "ACME", "2024-01-02", "5")
	testutil.CreatePrice(t, db, "ACME", "2024-01-03", "6")
	if err := svc.RecomputeSymbol(ctx, "ACME"); err != nil {
		t.Fatalf("RecomputeSymbol() returned unexpected error: %v", err)
	}

	latest, err := svc.GetLatest("ACME")
	if err != nil {
		t.Fatalf("GetLatest() returned unexpected error: %v", err)
	}
	if latest.Date.Format("2006-01-02") != "2024-01-03" {
		t.Errorf("Expected latest snapshot on 2024-01-03, got %s", latest.Date.Format("2006-01-02"))
	}
}

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/config"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/engine"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
)

// maxConcurrentRecomputes bounds the per-symbol workers during a full recompute.
const maxConcurrentRecomputes = 4

// SnapshotService recomputes and serves daily valuation snapshots.
// Each recompute rebuilds a symbol's full series from its transactions and
// prices, then atomically replaces the stored series.
type SnapshotService struct {
	snapshotRepo    *repository.SnapshotRepository
	transactionRepo *repository.TransactionRepository
	priceRepo       *repository.PriceRepository
	rateRepo        *repository.ExchangeRateRepository
	watchlistRepo   *repository.WatchlistRepository
	opts            engineOptions
}

// engineOptions carries the parsed valuation configuration.
type engineOptions struct {
	policy       engine.MatchPolicy
	oversell     engine.OversellMode
	baseCurrency string
	sellFeeBps   decimal.Decimal
	sellFeeFlat  decimal.Decimal
}

// NewSnapshotService creates a new SnapshotService with the provided repository
// dependencies and valuation configuration.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	transactionRepo *repository.TransactionRepository,
	priceRepo *repository.PriceRepository,
	rateRepo *repository.ExchangeRateRepository,
	watchlistRepo *repository.WatchlistRepository,
	cfg config.ValuationConfig,
) (*SnapshotService, error) {
	policy, err := engine.ParseMatchPolicy(cfg.LotPolicy)
	if err != nil {
		return nil, err
	}
	oversell, err := engine.ParseOversellMode(cfg.OversellMode)
	if err != nil {
		return nil, err
	}
	feeBps, err := decimal.NewFromString(cfg.SellFeeBps)
	if err != nil {
		return nil, fmt.Errorf("invalid SELL_FEE_BPS: %w", err)
	}
	feeFlat, err := decimal.NewFromString(cfg.SellFeeFlat)
	if err != nil {
		return nil, fmt.Errorf("invalid SELL_FEE_FLAT: %w", err)
	}

	return &SnapshotService{
		snapshotRepo:    snapshotRepo,
		transactionRepo: transactionRepo,
		priceRepo:       priceRepo,
		rateRepo:        rateRepo,
		watchlistRepo:   watchlistRepo,
		opts: engineOptions{
			policy:       policy,
			oversell:     oversell,
			baseCurrency: cfg.BaseCurrency,
			sellFeeBps:   feeBps,
			sellFeeFlat:  feeFlat,
		},
	}, nil
}

// RecomputeSymbol rebuilds the snapshot series for one symbol and stores it.
// Loads every transaction and price bar for the symbol plus the full exchange
// rate table, runs the valuation walk, and replaces the stored series in a
// single transaction. A failed walk leaves the previous series untouched.
func (s *SnapshotService) RecomputeSymbol(ctx context.Context, symbol string) error {
	transactions, err := s.transactionRepo.GetBySymbol(symbol)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecompute, err)
	}
	prices, err := s.priceRepo.GetBySymbol(symbol)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecompute, err)
	}
	rates, err := s.loadRates()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecompute, err)
	}

	snaps, err := engine.BuildDailySnapshots(symbol, transactions, prices, engine.Options{
		Policy:       s.opts.policy,
		Oversell:     s.opts.oversell,
		BaseCurrency: s.opts.baseCurrency,
		SellFeeBps:   s.opts.sellFeeBps,
		SellFeeFlat:  s.opts.sellFeeFlat,
		Rates:        rates,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", apperrors.ErrFailedToRecompute, symbol, err)
	}

	if err := s.snapshotRepo.ReplaceForSymbol(ctx, symbol, snaps); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrFailedToRecompute, symbol, err)
	}
	return nil
}

// RecomputeAll rebuilds snapshot series for every watchlist symbol.
// Symbols are recomputed in parallel with a bounded worker count. A failing
// symbol does not stop the others; the first error is returned after all
// symbols have been attempted.
func (s *SnapshotService) RecomputeAll(ctx context.Context) error {
	symbols, err := s.watchlistRepo.GetAll()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecompute, err)
	}

	// Plain group rather than WithContext: one bad symbol must not cancel
	// the recomputes still running for the healthy ones.
	var g errgroup.Group
	g.SetLimit(maxConcurrentRecomputes)
	for _, ws := range symbols {
		symbol := ws.Symbol
		g.Go(func() error {
			if err := s.RecomputeSymbol(ctx, symbol); err != nil {
				log.Printf("recompute failed for %s: %v", symbol, err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// GetTimeline returns the stored snapshot series for a symbol, oldest first.
// When start and end are both non-empty the series is restricted to that range.
func (s *SnapshotService) GetTimeline(symbol, start, end string) ([]model.DailySnapshot, error) {
	if start != "" && end != "" {
		return s.snapshotRepo.GetByDateRange(symbol, start, end)
	}
	return s.snapshotRepo.GetBySymbol(symbol)
}

// GetLatest returns the most recent stored snapshot for a symbol.
func (s *SnapshotService) GetLatest(symbol string) (model.DailySnapshot, error) {
	return s.snapshotRepo.GetLatest(symbol)
}

// TopOpportunities returns the days with the largest missed liquidation
// opportunity for a symbol, largest first.
func (s *SnapshotService) TopOpportunities(symbol string, limit int) ([]model.DailySnapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.snapshotRepo.TopOpportunities(symbol, limit)
}

// loadRates reads the full exchange rate table into an in-memory lookup.
func (s *SnapshotService) loadRates() (*engine.RateTable, error) {
	rates, err := s.rateRepo.GetAll()
	if err != nil {
		return nil, err
	}
	table := engine.NewRateTable()
	for _, r := range rates {
		table.Add(r.Date, r.FromCurrency, r.ToCurrency, r.Rate)
	}
	return table, nil
}

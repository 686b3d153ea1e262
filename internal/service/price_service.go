package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
)

// PriceService handles price bar and exchange rate operations.
// Price upserts recompute the affected symbol; rate upserts recompute nothing
// on their own since callers typically batch them before a full recompute.
type PriceService struct {
	priceRepo       *repository.PriceRepository
	rateRepo        *repository.ExchangeRateRepository
	snapshotService *SnapshotService
	baseCurrency    string
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(
	priceRepo *repository.PriceRepository,
	rateRepo *repository.ExchangeRateRepository,
	snapshotService *SnapshotService,
	baseCurrency string,
) *PriceService {
	return &PriceService{
		priceRepo:       priceRepo,
		rateRepo:        rateRepo,
		snapshotService: snapshotService,
		baseCurrency:    baseCurrency,
	}
}

// GetPrices retrieves all price bars for a symbol, oldest first.
func (s *PriceService) GetPrices(symbol string) ([]model.PriceBar, error) {
	return s.priceRepo.GetBySymbol(symbol)
}

// UpsertPrice stores a price bar and recomputes the symbol's snapshots.
func (s *PriceService) UpsertPrice(ctx context.Context, req request.UpsertPriceRequest) (*model.PriceBar, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	adjClose, err := decimal.NewFromString(req.AdjClose)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.baseCurrency
	}

	bar := &model.PriceBar{
		Symbol:   req.Symbol,
		Date:     date,
		AdjClose: adjClose,
		Currency: currency,
	}
	if err := s.priceRepo.Upsert(ctx, *bar); err != nil {
		return nil, err
	}
	if err := s.snapshotService.RecomputeSymbol(ctx, bar.Symbol); err != nil {
		return nil, err
	}
	return bar, nil
}

// UpsertExchangeRate stores a conversion rate for an exact date and pair.
func (s *PriceService) UpsertExchangeRate(ctx context.Context, req request.UpsertExchangeRateRequest) (*model.ExchangeRate, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, err
	}

	er := &model.ExchangeRate{
		Date:         date,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         rate,
	}
	if err := s.rateRepo.Upsert(ctx, *er); err != nil {
		return nil, err
	}
	return er, nil
}

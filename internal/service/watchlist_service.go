package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
)

// WatchlistService handles watchlist-related business logic operations.
type WatchlistService struct {
	watchlistRepo *repository.WatchlistRepository
	snapshotRepo  *repository.SnapshotRepository
	priceRepo     *repository.PriceRepository
}

// NewWatchlistService creates a new WatchlistService with the provided repository dependencies.
func NewWatchlistService(
	watchlistRepo *repository.WatchlistRepository,
	snapshotRepo *repository.SnapshotRepository,
	priceRepo *repository.PriceRepository,
) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		snapshotRepo:  snapshotRepo,
		priceRepo:     priceRepo,
	}
}

// GetWatchlist retrieves all tracked symbols.
func (s *WatchlistService) GetWatchlist() ([]model.WatchlistSymbol, error) {
	return s.watchlistRepo.GetAll()
}

// AddSymbol adds a new symbol to the watchlist.
// Returns apperrors.ErrDuplicateEntry when the symbol is already tracked.
func (s *WatchlistService) AddSymbol(ctx context.Context, symbol, displayName string) (*model.WatchlistSymbol, error) {
	if _, err := s.watchlistRepo.GetBySymbol(symbol); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntry, symbol)
	} else if !errors.Is(err, apperrors.ErrSymbolNotFound) {
		return nil, err
	}

	ws := &model.WatchlistSymbol{
		ID:          uuid.New().String(),
		Symbol:      symbol,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	if err := s.watchlistRepo.Insert(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// RemoveSymbol removes a symbol from the watchlist along with its snapshot series.
func (s *WatchlistService) RemoveSymbol(ctx context.Context, symbol string) error {
	if err := s.watchlistRepo.Delete(ctx, symbol); err != nil {
		return err
	}
	return s.snapshotRepo.DeleteForSymbol(ctx, symbol)
}

// GetSummary builds the dashboard overview: every tracked symbol with its
// latest snapshot and day-over-day price change. Symbols without snapshots or
// prices yet are included with those fields empty.
func (s *WatchlistService) GetSummary() ([]model.WatchlistEntry, error) {
	symbols, err := s.watchlistRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveWatchlist, err)
	}

	entries := make([]model.WatchlistEntry, 0, len(symbols))
	for _, ws := range symbols {
		entry := model.WatchlistEntry{
			Symbol:      ws.Symbol,
			DisplayName: ws.DisplayName,
		}

		latest, err := s.snapshotRepo.GetLatest(ws.Symbol)
		if err == nil {
			entry.Latest = &latest
		} else if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			return nil, err
		}

		bars, err := s.priceRepo.GetLastTwo(ws.Symbol)
		if err != nil {
			return nil, err
		}
		if len(bars) >= 1 {
			last := bars[0].AdjClose
			entry.LastPrice = &last
		}
		if len(bars) == 2 && !bars[1].AdjClose.IsZero() {
			change := bars[0].AdjClose.Sub(bars[1].AdjClose)
			pct := change.Div(bars[1].AdjClose).Mul(decimal.NewFromInt(100))
			entry.PriceChange = &change
			entry.PriceChangePct = &pct
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

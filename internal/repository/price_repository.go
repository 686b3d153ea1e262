package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// PriceRepository provides data access methods for the price_bar table.
// Price bars are written by the external ingest job and consumed read-mostly
// by the valuation engine.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetBySymbol retrieves the full daily price series for a symbol, sorted ascending by date.
func (r *PriceRepository) GetBySymbol(symbol string) ([]model.PriceBar, error) {
	query := `
		SELECT symbol, date, adj_close, currency
		FROM price_bar
		WHERE symbol = ?
		ORDER BY date ASC
	`
	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_bar table: %w", err)
	}
	defer rows.Close()

	bars := []model.PriceBar{}
	for rows.Next() {
		bar, err := scanPriceBar(rows.Scan)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_bar table: %w", err)
	}
	return bars, nil
}

// GetLastTwo retrieves the two most recent price bars for a symbol, newest
// first. Used for day-over-day change in the watchlist summary; returns
// fewer bars when less history exists.
func (r *PriceRepository) GetLastTwo(symbol string) ([]model.PriceBar, error) {
	query := `
		SELECT symbol, date, adj_close, currency
		FROM price_bar
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT 2
	`
	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_bar table: %w", err)
	}
	defer rows.Close()

	bars := []model.PriceBar{}
	for rows.Next() {
		bar, err := scanPriceBar(rows.Scan)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_bar table: %w", err)
	}
	return bars, nil
}

// Upsert inserts or replaces the price bar for its (symbol, date).
func (r *PriceRepository) Upsert(ctx context.Context, bar model.PriceBar) error {
	query := `
		INSERT INTO price_bar (symbol, date, adj_close, currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (symbol, date) DO UPDATE SET adj_close = excluded.adj_close, currency = excluded.currency
	`
	_, err := r.db.ExecContext(ctx, query,
		bar.Symbol,
		bar.Date.Format("2006-01-02"),
		bar.AdjClose.String(),
		bar.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price bar: %w", err)
	}
	return nil
}

func scanPriceBar(scan func(...any) error) (model.PriceBar, error) {
	var bar model.PriceBar
	var dateStr, adjCloseStr string

	if err := scan(&bar.Symbol, &dateStr, &adjCloseStr, &bar.Currency); err != nil {
		return model.PriceBar{}, fmt.Errorf("failed to scan price_bar table results: %w", err)
	}

	var err error
	bar.Date, err = ParseTime(dateStr)
	if err != nil || bar.Date.IsZero() {
		return model.PriceBar{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if bar.AdjClose, err = ParseDecimal(adjCloseStr); err != nil {
		return model.PriceBar{}, err
	}
	return bar, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// ExchangeRateRepository provides data access methods for the exchange_rate table.
type ExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// GetAll retrieves every stored exchange rate. The valuation engine loads
// them into an in-memory rate table per recomputation run; rate history for
// a personal portfolio is small enough to hold whole.
func (r *ExchangeRateRepository) GetAll() ([]model.ExchangeRate, error) {
	query := `
		SELECT date, from_currency, to_currency, rate
		FROM exchange_rate
		ORDER BY date ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}
	for rows.Next() {
		var rate model.ExchangeRate
		var dateStr, rateStr string

		if err := rows.Scan(&dateStr, &rate.FromCurrency, &rate.ToCurrency, &rateStr); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		rate.Date, err = ParseTime(dateStr)
		if err != nil || rate.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if rate.Rate, err = ParseDecimal(rateStr); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}
	return rates, nil
}

// Upsert inserts or replaces the rate for its (date, from, to) key.
func (r *ExchangeRateRepository) Upsert(ctx context.Context, rate model.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rate (date, from_currency, to_currency, rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date, from_currency, to_currency) DO UPDATE SET rate = excluded.rate
	`
	_, err := r.db.ExecContext(ctx, query,
		rate.Date.Format("2006-01-02"),
		rate.FromCurrency,
		rate.ToCurrency,
		rate.Rate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults (a BUY of 100 shares at 10)
//	tx := testutil.NewTransaction("ACME").Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction("ACME").
//	    Sell().
//	    WithDate("2024-03-01").
//	    WithQuantity("40").
//	    WithPrice("12.50").
//	    Build(t, db)
type TransactionBuilder struct {
	ID       string
	Symbol   string
	Date     string
	Type     string
	Quantity string
	Price    string
	Fee      string
	Tax      string
	Currency string
	LotIDs   []string
	Notes    string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(symbol string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:       MakeID(),
		Symbol:   symbol,
		Date:     "2024-01-02",
		Type:     model.TransactionBuy,
		Quantity: "100",
		Price:    "10",
		Fee:      "0",
		Tax:      "0",
		Currency: "USD",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// Sell marks the transaction as a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// WithQuantity sets the share quantity as a decimal string.
func (b *TransactionBuilder) WithQuantity(quantity string) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the per-share price as a decimal string.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.Price = price
	return b
}

// WithFee sets the transaction fee as a decimal string.
func (b *TransactionBuilder) WithFee(fee string) *TransactionBuilder {
	b.Fee = fee
	return b
}

// WithTax sets the transaction tax as a decimal string.
func (b *TransactionBuilder) WithTax(tax string) *TransactionBuilder {
	b.Tax = tax
	return b
}

// WithCurrency sets the transaction currency.
func (b *TransactionBuilder) WithCurrency(currency string) *TransactionBuilder {
	b.Currency = currency
	return b
}

// WithLotIDs sets the specifically identified lots for a SELL.
func (b *TransactionBuilder) WithLotIDs(lotIDs ...string) *TransactionBuilder {
	b.LotIDs = lotIDs
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, symbol, date, type, quantity, price, fee, tax, currency, lot_ids, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var lotIDs any
	if len(b.LotIDs) > 0 {
		lotIDs = strings.Join(b.LotIDs, ",")
	}

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.Symbol, b.Date, b.Type, b.Quantity, b.Price, b.Fee, b.Tax, b.Currency, lotIDs, b.Notes, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Symbol:    b.Symbol,
		Date:      date.UTC(),
		Type:      b.Type,
		Quantity:  MustDecimal(t, b.Quantity),
		Price:     MustDecimal(t, b.Price),
		Fee:       MustDecimal(t, b.Fee),
		Tax:       MustDecimal(t, b.Tax),
		Currency:  b.Currency,
		LotIDs:    b.LotIDs,
		Notes:     b.Notes,
		CreatedAt: createdAt,
	}
}

// Convenience functions

// CreateBuy creates a BUY transaction with the given date, quantity, and price.
func CreateBuy(t *testing.T, db *sql.DB, symbol, date, quantity, price string) model.Transaction {
	t.Helper()
	return NewTransaction(symbol).WithDate(date).WithQuantity(quantity).WithPrice(price).Build(t, db)
}

// CreateSell creates a SELL transaction with the given date, quantity, and price.
func CreateSell(t *testing.T, db *sql.DB, symbol, date, quantity, price string) model.Transaction {
	t.Helper()
	return NewTransaction(symbol).Sell().WithDate(date).WithQuantity(quantity).WithPrice(price).Build(t, db)
}

// CreatePrice stores a price bar for the symbol on the given date.
func CreatePrice(t *testing.T, db *sql.DB, symbol, date, adjClose string) model.PriceBar {
	t.Helper()
	return CreatePriceInCurrency(t, db, symbol, date, adjClose, "USD")
}

// CreatePriceInCurrency stores a price bar denominated in the given currency.
func CreatePriceInCurrency(t *testing.T, db *sql.DB, symbol, date, adjClose, currency string) model.PriceBar {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO price_bar (symbol, date, adj_close, currency) VALUES (?, ?, ?, ?)`,
		symbol, date, adjClose, currency,
	)
	if err != nil {
		t.Fatalf("Failed to create test price bar: %v", err)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Invalid test price date: %v", err)
	}

	return model.PriceBar{
		Symbol:   symbol,
		Date:     day.UTC(),
		AdjClose: MustDecimal(t, adjClose),
		Currency: currency,
	}
}

// CreateExchangeRate stores a conversion rate for the exact date and pair.
func CreateExchangeRate(t *testing.T, db *sql.DB, date, from, to, rate string) model.ExchangeRate {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO exchange_rate (date, from_currency, to_currency, rate) VALUES (?, ?, ?, ?)`,
		date, from, to, rate,
	)
	if err != nil {
		t.Fatalf("Failed to create test exchange rate: %v", err)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Invalid test exchange rate date: %v", err)
	}

	return model.ExchangeRate{
		Date:         day.UTC(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         MustDecimal(t, rate),
	}
}

// CreateWatchlistSymbol adds a symbol to the watchlist.
func CreateWatchlistSymbol(t *testing.T, db *sql.DB, symbol string) model.WatchlistSymbol {
	t.Helper()

	ws := model.WatchlistSymbol{
		ID:          MakeID(),
		Symbol:      symbol,
		DisplayName: symbol,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO watchlist_symbol (id, symbol, display_name, created_at) VALUES (?, ?, ?, ?)`,
		ws.ID, ws.Symbol, ws.DisplayName, ws.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test watchlist symbol: %v", err)
	}
	return ws
}

// MustDecimal parses a decimal string, failing the test on error.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", s, err)
	}
	return d
}

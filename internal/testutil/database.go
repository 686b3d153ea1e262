package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Watchlist table
		CREATE TABLE IF NOT EXISTS watchlist_symbol (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(16) NOT NULL UNIQUE,
			display_name VARCHAR(128),
			created_at DATETIME NOT NULL
		);

		-- Transaction table (decimals stored as TEXT)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(16) NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL CHECK (type IN ('BUY', 'SELL', 'DIVIDEND', 'FEE', 'SPLIT')),
			quantity TEXT NOT NULL,
			price TEXT NOT NULL,
			fee TEXT NOT NULL DEFAULT '0',
			tax TEXT NOT NULL DEFAULT '0',
			currency VARCHAR(3) NOT NULL,
			lot_ids TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transaction_symbol_date ON "transaction" (symbol, date);

		-- Price bar table
		CREATE TABLE IF NOT EXISTS price_bar (
			symbol VARCHAR(16) NOT NULL,
			date DATE NOT NULL,
			adj_close TEXT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			PRIMARY KEY (symbol, date)
		);

		-- Exchange rate table
		CREATE TABLE IF NOT EXISTS exchange_rate (
			date DATE NOT NULL,
			from_currency VARCHAR(3) NOT NULL,
			to_currency VARCHAR(3) NOT NULL,
			rate TEXT NOT NULL,
			PRIMARY KEY (date, from_currency, to_currency)
		);

		-- Daily snapshot table
		CREATE TABLE IF NOT EXISTS daily_snapshot (
			symbol VARCHAR(16) NOT NULL,
			date DATE NOT NULL,
			shares_open TEXT NOT NULL,
			market_value TEXT NOT NULL,
			cost_basis_open TEXT NOT NULL,
			unrealized_pl TEXT NOT NULL,
			realized_pl_to_date TEXT NOT NULL,
			hypo_liquidation_pl TEXT NOT NULL,
			day_opportunity TEXT NOT NULL,
			peak_hypo_pl_to_date TEXT NOT NULL,
			drawdown_from_peak_pct TEXT NOT NULL,
			PRIMARY KEY (symbol, date)
		);
		CREATE INDEX IF NOT EXISTS idx_daily_snapshot_symbol_date ON daily_snapshot (symbol, date);
	`

	_, err := db.Exec(schema)
	return err
}

package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/config"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
)

// NewTestSnapshotService builds a SnapshotService on the test database with
// FIFO matching, strict oversell, USD base, and no sell fees.
func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()
	return NewTestSnapshotServiceWithConfig(t, db, config.ValuationConfig{
		BaseCurrency: "USD",
		LotPolicy:    "FIFO",
		OversellMode: "STRICT",
		SellFeeBps:   "0",
		SellFeeFlat:  "0",
	})
}

// NewTestSnapshotServiceWithConfig builds a SnapshotService with custom
// valuation settings.
func NewTestSnapshotServiceWithConfig(t *testing.T, db *sql.DB, cfg config.ValuationConfig) *service.SnapshotService {
	t.Helper()

	svc, err := service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewPriceRepository(db),
		repository.NewExchangeRateRepository(db),
		repository.NewWatchlistRepository(db),
		cfg,
	)
	if err != nil {
		t.Fatalf("Failed to create snapshot service: %v", err)
	}
	return svc
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		NewTestSnapshotService(t, db),
		"USD",
	)
}

func NewTestWatchlistService(t *testing.T, db *sql.DB) *service.WatchlistService {
	t.Helper()

	return service.NewWatchlistService(
		repository.NewWatchlistRepository(db),
		repository.NewSnapshotRepository(db),
		repository.NewPriceRepository(db),
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewPriceRepository(db),
		repository.NewExchangeRateRepository(db),
		NewTestSnapshotService(t, db),
		"USD",
	)
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol returns a unique ticker-like symbol with the given base.
func MakeSymbol(base string) string {
	if base == "" {
		base = "SYM"
	}
	return base + randomAlphanumeric(3)
}

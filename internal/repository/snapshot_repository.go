package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the daily_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = `symbol, date, shares_open, market_value, cost_basis_open,
	unrealized_pl, realized_pl_to_date, hypo_liquidation_pl, day_opportunity,
	peak_hypo_pl_to_date, drawdown_from_peak_pct`

// GetBySymbol retrieves the full snapshot series for a symbol, oldest first.
func (r *SnapshotRepository) GetBySymbol(symbol string) ([]model.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshot
		WHERE symbol = ?
		ORDER BY date ASC
	`
	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// GetByDateRange retrieves snapshots for a symbol within [start, end], oldest first.
func (r *SnapshotRepository) GetByDateRange(symbol, start, end string) ([]model.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshot
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`
	rows, err := r.db.Query(query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// GetLatest retrieves the most recent snapshot for a symbol.
// Returns apperrors.ErrSnapshotNotFound if no snapshot exists.
func (r *SnapshotRepository) GetLatest(symbol string) (model.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshot
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT 1
	`
	row := r.db.QueryRow(query, symbol)
	snap, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.DailySnapshot{}, err
	}
	return snap, nil
}

// TopOpportunities retrieves the snapshots with the highest day opportunity for a
// symbol, largest first. Decimals are stored as TEXT, so ordering casts to REAL;
// lexicographic TEXT ordering would mis-rank values of different widths.
func (r *SnapshotRepository) TopOpportunities(symbol string, limit int) ([]model.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshot
		WHERE symbol = ? AND CAST(day_opportunity AS REAL) > 0
		ORDER BY CAST(day_opportunity AS REAL) DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// ReplaceForSymbol atomically replaces the snapshot series for a symbol.
// The delete and all inserts run in a single transaction so readers never
// observe a partially written series.
func (r *SnapshotRepository) ReplaceForSymbol(ctx context.Context, symbol string, snaps []model.DailySnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_snapshot WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to delete existing snapshots: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_snapshot (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i := range snaps {
		s := &snaps[i]
		_, err := stmt.ExecContext(ctx,
			s.Symbol,
			s.Date.UTC().Format("2006-01-02"),
			s.SharesOpen.String(),
			s.MarketValue.String(),
			s.CostBasisOpen.String(),
			s.UnrealizedPL.String(),
			s.RealizedPLToDate.String(),
			s.HypoLiquidationPL.String(),
			s.DayOpportunity.String(),
			s.PeakHypoPLToDate.String(),
			s.DrawdownFromPeakPct.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for %s on %s: %w", s.Symbol, s.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot replacement: %w", err)
	}
	return nil
}

// DeleteForSymbol removes the entire snapshot series for a symbol.
func (r *SnapshotRepository) DeleteForSymbol(ctx context.Context, symbol string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_snapshot WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}

func scanSnapshots(rows *sql.Rows) ([]model.DailySnapshot, error) {
	snaps := []model.DailySnapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_snapshot table: %w", err)
	}
	return snaps, nil
}

func scanSnapshot(scan func(...any) error) (model.DailySnapshot, error) {
	var snap model.DailySnapshot
	var dateStr string
	var shares, mv, basis, unreal, realized, hypo, opp, peak, dd string

	err := scan(&snap.Symbol, &dateStr, &shares, &mv, &basis, &unreal, &realized, &hypo, &opp, &peak, &dd)
	if err == sql.ErrNoRows {
		return model.DailySnapshot{}, err
	}
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
	}

	snap.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if snap.SharesOpen, err = ParseDecimal(shares); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse shares_open: %w", err)
	}
	if snap.MarketValue, err = ParseDecimal(mv); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse market_value: %w", err)
	}
	if snap.CostBasisOpen, err = ParseDecimal(basis); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse cost_basis_open: %w", err)
	}
	if snap.UnrealizedPL, err = ParseDecimal(unreal); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse unrealized_pl: %w", err)
	}
	if snap.RealizedPLToDate, err = ParseDecimal(realized); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse realized_pl_to_date: %w", err)
	}
	if snap.HypoLiquidationPL, err = ParseDecimal(hypo); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse hypo_liquidation_pl: %w", err)
	}
	if snap.DayOpportunity, err = ParseDecimal(opp); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse day_opportunity: %w", err)
	}
	if snap.PeakHypoPLToDate, err = ParseDecimal(peak); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse peak_hypo_pl_to_date: %w", err)
	}
	if snap.DrawdownFromPeakPct, err = ParseDecimal(dd); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse drawdown_from_peak_pct: %w", err)
	}
	return snap, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// WatchlistRepository provides data access methods for the watchlist_symbol table.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository with the provided database connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// GetAll retrieves all watchlist symbols sorted alphabetically.
func (r *WatchlistRepository) GetAll() ([]model.WatchlistSymbol, error) {
	query := `
		SELECT id, symbol, display_name, created_at
		FROM watchlist_symbol
		ORDER BY symbol ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist_symbol table: %w", err)
	}
	defer rows.Close()

	symbols := []model.WatchlistSymbol{}
	for rows.Next() {
		ws, err := scanWatchlistSymbol(rows.Scan)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist_symbol table: %w", err)
	}
	return symbols, nil
}

// GetBySymbol retrieves one watchlist entry by its symbol.
// Returns apperrors.ErrSymbolNotFound if the symbol is not tracked.
func (r *WatchlistRepository) GetBySymbol(symbol string) (model.WatchlistSymbol, error) {
	query := `
		SELECT id, symbol, display_name, created_at
		FROM watchlist_symbol
		WHERE symbol = ?
	`
	row := r.db.QueryRow(query, symbol)
	ws, err := scanWatchlistSymbol(row.Scan)
	if err == sql.ErrNoRows {
		return model.WatchlistSymbol{}, apperrors.ErrSymbolNotFound
	}
	if err != nil {
		return model.WatchlistSymbol{}, err
	}
	return ws, nil
}

// Insert stores a new watchlist symbol.
func (r *WatchlistRepository) Insert(ctx context.Context, ws *model.WatchlistSymbol) error {
	query := `
		INSERT INTO watchlist_symbol (id, symbol, display_name, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		ws.ID,
		ws.Symbol,
		ws.DisplayName,
		ws.CreatedAt.UTC().Format(timeFormatRFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist symbol: %w", err)
	}
	return nil
}

// Delete removes a symbol from the watchlist.
// Returns apperrors.ErrSymbolNotFound if no row was affected.
func (r *WatchlistRepository) Delete(ctx context.Context, symbol string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM watchlist_symbol WHERE symbol = ?`, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist symbol: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSymbolNotFound
	}
	return nil
}

func scanWatchlistSymbol(scan func(...any) error) (model.WatchlistSymbol, error) {
	var ws model.WatchlistSymbol
	var displayName sql.NullString
	var createdAtStr string

	err := scan(&ws.ID, &ws.Symbol, &displayName, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.WatchlistSymbol{}, err
	}
	if err != nil {
		return model.WatchlistSymbol{}, fmt.Errorf("failed to scan watchlist_symbol table results: %w", err)
	}

	if displayName.Valid {
		ws.DisplayName = displayName.String
	}
	ws.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.WatchlistSymbol{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return ws, nil
}

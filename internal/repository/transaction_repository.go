package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, symbol, date, type, quantity, price, fee, tax, currency, lot_ids, notes, created_at`

// GetBySymbol retrieves all transactions for a symbol, sorted by date then ID.
// The (date, id) ordering matches the engine's deterministic same-day tie-break.
func (r *TransactionRepository) GetBySymbol(symbol string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE symbol = ?
		ORDER BY date ASC, id ASC
	`
	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetAll retrieves every transaction across all symbols, sorted by date then ID.
func (r *TransactionRepository) GetAll() ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY date ASC, id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Get retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no row exists.
func (r *TransactionRepository) Get(id string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`
	row := r.db.QueryRow(query, id)
	tx, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// Insert stores a new transaction record.
func (r *TransactionRepository) Insert(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, symbol, date, type, quantity, price, fee, tax, currency, lot_ids, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.Symbol,
		tx.Date.Format("2006-01-02"),
		tx.Type,
		tx.Quantity.String(),
		tx.Price.String(),
		tx.Fee.String(),
		tx.Tax.String(),
		tx.Currency,
		joinLotIDs(tx.LotIDs),
		tx.Notes,
		tx.CreatedAt.UTC().Format(timeFormatRFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// Update replaces all mutable fields of an existing transaction.
// Returns apperrors.ErrTransactionNotFound if no row was affected.
func (r *TransactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET symbol = ?, date = ?, type = ?, quantity = ?, price = ?, fee = ?, tax = ?, currency = ?, lot_ids = ?, notes = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		tx.Symbol,
		tx.Date.Format("2006-01-02"),
		tx.Type,
		tx.Quantity.String(),
		tx.Price.String(),
		tx.Fee.String(),
		tx.Tax.String(),
		tx.Currency,
		joinLotIDs(tx.LotIDs),
		tx.Notes,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no row was affected.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

const timeFormatRFC3339 = "2006-01-02T15:04:05Z07:00"

func joinLotIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitLotIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return transactions, nil
}

func scanTransaction(scan func(...any) error) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var quantityStr, priceStr, feeStr, taxStr string
	var lotIDs, notes sql.NullString

	err := scan(
		&t.ID,
		&t.Symbol,
		&dateStr,
		&t.Type,
		&quantityStr,
		&priceStr,
		&feeStr,
		&taxStr,
		&t.Currency,
		&lotIDs,
		&notes,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if t.Quantity, err = ParseDecimal(quantityStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Price, err = ParseDecimal(priceStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Fee, err = ParseDecimal(feeStr); err != nil {
		return model.Transaction{}, err
	}
	if t.Tax, err = ParseDecimal(taxStr); err != nil {
		return model.Transaction{}, err
	}

	if lotIDs.Valid {
		t.LotIDs = splitLotIDs(lotIDs.String)
	}
	if notes.Valid {
		t.Notes = notes.String
	}

	return t, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
// Every mutation triggers a snapshot recompute for the affected symbol so the
// stored series never drifts from the transaction log.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	snapshotService *SnapshotService
	baseCurrency    string
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	snapshotService *SnapshotService,
	baseCurrency string,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		snapshotService: snapshotService,
		baseCurrency:    baseCurrency,
	}
}

// GetTransactions retrieves all transactions, oldest first.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetAll()
}

// GetTransactionsBySymbol retrieves all transactions for a symbol, oldest first.
func (s *TransactionService) GetTransactionsBySymbol(symbol string) ([]model.Transaction, error) {
	return s.transactionRepo.GetBySymbol(symbol)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.Get(transactionID)
}

// CreateTransaction stores a new transaction and recomputes the symbol's snapshots.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	quantity, price, fee, tax, err := parseTransactionAmounts(req.Quantity, req.Price, req.Fee, req.Tax)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.baseCurrency
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Symbol:    req.Symbol,
		Date:      transactionDate,
		Type:      req.Type,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Tax:       tax,
		Currency:  currency,
		LotIDs:    req.LotIDs,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	if err := s.transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := s.snapshotService.RecomputeSymbol(ctx, transaction.Symbol); err != nil {
		// Roll the insert back so the transaction log stays consistent with
		// the stored snapshots.
		if delErr := s.transactionRepo.Delete(ctx, transaction.ID); delErr != nil {
			return nil, fmt.Errorf("%w (rollback also failed: %v)", err, delErr)
		}
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction and
// recomputes the symbol's snapshots.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.Get(transactionID)
	if err != nil {
		return nil, err
	}
	original := transaction

	if req.Date != nil {
		transactionDate, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = transactionDate
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Quantity != nil {
		if transaction.Quantity, err = decimal.NewFromString(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if transaction.Price, err = decimal.NewFromString(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Fee != nil {
		if transaction.Fee, err = decimal.NewFromString(*req.Fee); err != nil {
			return nil, err
		}
	}
	if req.Tax != nil {
		if transaction.Tax, err = decimal.NewFromString(*req.Tax); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		transaction.Currency = *req.Currency
	}
	if req.LotIDs != nil {
		transaction.LotIDs = req.LotIDs
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}

	if err := s.transactionRepo.Update(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if err := s.snapshotService.RecomputeSymbol(ctx, transaction.Symbol); err != nil {
		if restoreErr := s.transactionRepo.Update(ctx, &original); restoreErr != nil {
			return nil, fmt.Errorf("%w (rollback also failed: %v)", err, restoreErr)
		}
		return nil, err
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction and recomputes the symbol's snapshots.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.transactionRepo.Get(transactionID)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.Delete(ctx, transactionID); err != nil {
		return err
	}
	if err := s.snapshotService.RecomputeSymbol(ctx, transaction.Symbol); err != nil {
		// Removing a buy can strand later sells, reinstate the row.
		if restoreErr := s.transactionRepo.Insert(ctx, &transaction); restoreErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, restoreErr)
		}
		return err
	}
	return nil
}

func parseTransactionAmounts(quantity, price, fee, tax string) (q, p, f, t decimal.Decimal, err error) {
	if q, err = decimal.NewFromString(quantity); err != nil {
		return
	}
	if p, err = decimal.NewFromString(price); err != nil {
		return
	}
	f = decimal.Zero
	if fee != "" {
		if f, err = decimal.NewFromString(fee); err != nil {
			return
		}
	}
	t = decimal.Zero
	if tax != "" {
		if t, err = decimal.NewFromString(tax); err != nil {
			return
		}
	}
	return
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/request"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/apperrors"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/testutil"
)

// TestTransactionService_CreateTransaction tests creation and its recompute
// side effect.
//
// WHY: Creating a transaction must leave the database in a consistent state:
// the row is stored, the snapshot series reflects it, and a rejected series
// (strict oversell) stores neither.
func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the transaction and refreshes snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		snapshots := testutil.NewTestSnapshotService(t, db)

		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")

		tx, err := svc.CreateTransaction(ctx, request.CreateTransactionRequest{
			Symbol:   "ACME",
			Date:     "2024-01-02",
			Type:     "BUY",
			Quantity: "100",
			Price:    "10",
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if tx.ID == "" {
			t.Error("Expected a generated transaction ID")
		}
		if tx.Currency != "USD" {
			t.Errorf("Expected base currency default USD, got %s", tx.Currency)
		}

		snaps, err := snapshots.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 {
			t.Fatalf("Expected 1 snapshot after create, got %d", len(snaps))
		}
		if !snaps[0].SharesOpen.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected 100 shares open, got %s", snaps[0].SharesOpen)
		}
	})

	t.Run("rolls back an oversell rejected by the engine", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")

		_, err := svc.CreateTransaction(ctx, request.CreateTransactionRequest{
			Symbol:   "ACME",
			Date:     "2024-01-02",
			Type:     "SELL",
			Quantity: "50",
			Price:    "10",
		})
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares, got %v", err)
		}

		remaining, err := svc.GetTransactions()
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("Expected rejected transaction to be rolled back, found %d rows", len(remaining))
		}
	})
}

// TestTransactionService_UpdateTransaction tests partial updates.
//
// WHY: Updates rewrite history, so the series must be recomputed from the
// modified log, and an update that invalidates the series must be reverted.
func TestTransactionService_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("applies changed fields and recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		snapshots := testutil.NewTestSnapshotService(t, db)

		tx := testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")

		newQuantity := "50"
		updated, err := svc.UpdateTransaction(ctx, tx.ID, request.UpdateTransactionRequest{
			Quantity: &newQuantity,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}
		if !updated.Quantity.Equal(testutil.MustDecimal(t, "50")) {
			t.Errorf("Expected quantity 50, got %s", updated.Quantity)
		}
		if !updated.Price.Equal(testutil.MustDecimal(t, "10")) {
			t.Errorf("Expected price untouched at 10, got %s", updated.Price)
		}

		snaps, err := snapshots.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 || !snaps[0].SharesOpen.Equal(testutil.MustDecimal(t, "50")) {
			t.Errorf("Expected recomputed series with 50 shares open")
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.UpdateTransaction(ctx, testutil.MakeID(), request.UpdateTransactionRequest{})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("restores the original row when the update oversells", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		buy := testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreateSell(t, db, "ACME", "2024-01-03", "100", "12")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-03", "12")

		// Shrinking the buy strands the existing sell.
		newQuantity := "40"
		_, err := svc.UpdateTransaction(ctx, buy.ID, request.UpdateTransactionRequest{
			Quantity: &newQuantity,
		})
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares, got %v", err)
		}

		restored, err := svc.GetTransaction(buy.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if !restored.Quantity.Equal(testutil.MustDecimal(t, "100")) {
			t.Errorf("Expected original quantity 100 restored, got %s", restored.Quantity)
		}
	})
}

// TestTransactionService_DeleteTransaction tests deletion.
//
// WHY: Deleting a buy that later sells depend on must fail cleanly and keep
// the row; deleting an unreferenced transaction must refresh the series.
func TestTransactionService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row and recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		snapshots := testutil.NewTestSnapshotService(t, db)

		tx := testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")

		if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		snaps, err := snapshots.GetTimeline("ACME", "", "")
		if err != nil {
			t.Fatalf("GetTimeline() returned unexpected error: %v", err)
		}
		if len(snaps) != 1 || !snaps[0].SharesOpen.IsZero() {
			t.Errorf("Expected a flat snapshot after deleting the only buy")
		}
	})

	t.Run("reinstates a buy whose removal strands a sell", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		buy := testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
		testutil.CreateSell(t, db, "ACME", "2024-01-03", "100", "12")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")
		testutil.CreatePrice(t, db, "ACME", "2024-01-03", "12")

		err := svc.DeleteTransaction(ctx, buy.ID)
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares, got %v", err)
		}

		if _, err := svc.GetTransaction(buy.ID); err != nil {
			t.Errorf("Expected buy to be reinstated, got %v", err)
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		err := svc.DeleteTransaction(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

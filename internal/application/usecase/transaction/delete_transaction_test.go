package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

func TestDeleteTransaction_TodayReversesBalance(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1500))
	tx := store.addTransaction(account.ID, testDate, entity.TransactionTypeDeposit, 500)
	uc := NewDeleteTransactionUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	out, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: tx.ID, ActorID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.IsHistoricalDeletion {
		t.Error("today-dated row should not be flagged historical")
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if !got.CurrentBalance.Equal(d(1000)) {
		t.Errorf("account balance = %s, want 1000 after reversing the deposit", got.CurrentBalance)
	}
	if _, err := store.GetTransaction(ctx, tx.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Error("row should be gone")
	}
}

func TestDeleteTransaction_TodayDeposit_InsufficientBalance(t *testing.T) {
	store := newFakeStore()
	// The deposit was already spent: reversing it would go negative.
	account := store.addAccount("Main Branch Cash", d(200))
	tx := store.addTransaction(account.ID, testDate, entity.TransactionTypeDeposit, 500)
	uc := NewDeleteTransactionUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	_, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: tx.ID, ActorID: uuid.New()})
	if !errors.Is(err, domainerror.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if _, err := store.GetTransaction(ctx, tx.ID); err != nil {
		t.Error("row should survive a refused deletion")
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if !got.CurrentBalance.Equal(d(200)) {
		t.Errorf("account balance = %s, want untouched 200", got.CurrentBalance)
	}
}

func TestDeleteTransaction_HistoricalReopensDay(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	yesterday := testDate.AddDate(0, 0, -1)
	tx := store.addTransaction(account.ID, yesterday, entity.TransactionTypeExpense, 50)
	store.addClosedDay(account.ID, yesterday)
	uc := NewDeleteTransactionUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	out, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: tx.ID, ActorID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.IsHistoricalDeletion {
		t.Error("yesterday's row should be flagged historical")
	}
	if !out.ReopenedDailyBalance {
		t.Error("expected the closed day to reopen")
	}
	got, _ := store.GetAccount(ctx, account.ID)
	if !got.CurrentBalance.Equal(d(1000)) {
		t.Errorf("account balance = %s, want untouched 1000", got.CurrentBalance)
	}
}

func TestDeleteTransaction_TransferRemovesBothLegs(t *testing.T) {
	store := newFakeStore()
	source := store.addAccount("Main Branch Cash", d(1000))
	destination := store.addAccount("Downtown Branch Cash", d(200))
	createUC := NewCreateTransactionUseCase(store, fixedClock{today: testDate})
	deleteUC := NewDeleteTransactionUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateTransactionInput{
		Date:                testDate,
		Time:                "14:00:00",
		Type:                entity.TransactionTypeTransfer,
		Amount:              d(400),
		AccountID:           source.ID,
		TransferToAccountID: &destination.ID,
		ActorID:             uuid.New(),
	})
	if err != nil {
		t.Fatalf("transfer create failed: %v", err)
	}

	// Delete via the mirrored leg; both rows must go and both balances
	// must return to their pre-transfer values.
	if _, err := deleteUC.Execute(ctx, DeleteTransactionInput{
		TransactionID: created.PairedTransaction.ID,
		ActorID:       uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.GetTransaction(ctx, created.Transaction.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Error("source leg should be gone")
	}
	if _, err := store.GetTransaction(ctx, created.PairedTransaction.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Error("mirrored leg should be gone")
	}

	gotSource, _ := store.GetAccount(ctx, source.ID)
	if !gotSource.CurrentBalance.Equal(d(1000)) {
		t.Errorf("source balance = %s, want 1000", gotSource.CurrentBalance)
	}
	gotDestination, _ := store.GetAccount(ctx, destination.ID)
	if !gotDestination.CurrentBalance.Equal(d(200)) {
		t.Errorf("destination balance = %s, want 200", gotDestination.CurrentBalance)
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	store := newFakeStore()
	uc := NewDeleteTransactionUseCase(store, fixedClock{today: testDate})

	_, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: uuid.New(),
		ActorID:       uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

func TestUpdateTransaction_TodayAmountChange(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	tx := store.addTransaction(account.ID, testDate, entity.TransactionTypeDeposit, 500)
	uc := NewUpdateTransactionUseCase(store, fixedClock{today: testDate})

	newAmount := d(800)
	out, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: tx.ID,
		Amount:        &newAmount,
		ActorID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.IsHistoricalUpdate {
		t.Error("today-dated row should not be flagged historical")
	}
	// Deposit raised by 300, the balance moves by the same delta.
	got, _ := store.GetAccount(context.Background(), account.ID)
	if !got.CurrentBalance.Equal(d(1300)) {
		t.Errorf("account balance = %s, want 1300", got.CurrentBalance)
	}
	stored, _ := store.GetTransaction(context.Background(), tx.ID)
	if !stored.Amount.Equal(d(800)) {
		t.Errorf("stored amount = %s, want 800", stored.Amount)
	}
}

func TestUpdateTransaction_TodayAmountChange_InsufficientBalance(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(100))
	tx := store.addTransaction(account.ID, testDate, entity.TransactionTypeWithdrawal, 50)
	uc := NewUpdateTransactionUseCase(store, fixedClock{today: testDate})

	// Raising the withdrawal by 200 would leave the balance at -100.
	newAmount := d(250)
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: tx.ID,
		Amount:        &newAmount,
		ActorID:       uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	got, _ := store.GetAccount(context.Background(), account.ID)
	if !got.CurrentBalance.Equal(d(100)) {
		t.Errorf("account balance = %s, want untouched 100", got.CurrentBalance)
	}
}

func TestUpdateTransaction_HistoricalAmountChange(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	yesterday := testDate.AddDate(0, 0, -1)
	tx := store.addTransaction(account.ID, yesterday, entity.TransactionTypeDeposit, 500)
	store.addClosedDay(account.ID, yesterday)
	uc := NewUpdateTransactionUseCase(store, fixedClock{today: testDate})

	newAmount := d(900)
	out, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: tx.ID,
		Amount:        &newAmount,
		ActorID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.IsHistoricalUpdate {
		t.Error("yesterday's row should be flagged historical")
	}
	if !out.ReopenedDailyBalance {
		t.Error("expected the closed day to reopen")
	}
	got, _ := store.GetAccount(context.Background(), account.ID)
	if !got.CurrentBalance.Equal(d(1000)) {
		t.Errorf("account balance = %s, want untouched 1000", got.CurrentBalance)
	}
	record, _ := store.FindDailyBalance(context.Background(), account.ID, yesterday)
	if record.IsClosed {
		t.Error("daily balance should be open after the historical edit")
	}
}

func TestUpdateTransaction_NoteAndCategory(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	tx := store.addTransaction(account.ID, testDate, entity.TransactionTypeExpense, 40)
	uc := NewUpdateTransactionUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	note := "office supplies"
	categoryID := uuid.New()
	if _, err := uc.Execute(ctx, UpdateTransactionInput{
		TransactionID: tx.ID,
		Note:          &note,
		CategoryID:    &categoryID,
		ActorID:       uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := store.GetTransaction(ctx, tx.ID)
	if stored.Note != "office supplies" {
		t.Errorf("note = %q, want %q", stored.Note, "office supplies")
	}
	if stored.CategoryID == nil || *stored.CategoryID != categoryID {
		t.Error("category was not applied")
	}
	// A note-only edit never touches the balance.
	got, _ := store.GetAccount(ctx, account.ID)
	if !got.CurrentBalance.Equal(d(1000)) {
		t.Errorf("account balance = %s, want 1000", got.CurrentBalance)
	}

	if _, err := uc.Execute(ctx, UpdateTransactionInput{
		TransactionID: tx.ID,
		ClearCategory: true,
		ActorID:       uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ = store.GetTransaction(ctx, tx.ID)
	if stored.CategoryID != nil {
		t.Error("category should be cleared")
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	store := newFakeStore()
	uc := NewUpdateTransactionUseCase(store, fixedClock{today: testDate})

	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: uuid.New(),
		ActorID:       uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

package transaction

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

func TestBulkUpdateHistorical(t *testing.T) {
	store := newFakeStore()
	first := store.addAccount("Main Branch Cash", d(1000))
	second := store.addAccount("Downtown Branch Cash", d(500))
	dayOne := testDate.AddDate(0, 0, -2)
	dayTwo := testDate.AddDate(0, 0, -1)

	txA := store.addTransaction(first.ID, dayOne, entity.TransactionTypeDeposit, 100)
	txB := store.addTransaction(first.ID, dayOne, entity.TransactionTypeExpense, 40)
	txC := store.addTransaction(second.ID, dayTwo, entity.TransactionTypeWithdrawal, 60)
	store.addClosedDay(first.ID, dayOne)
	store.addClosedDay(second.ID, dayTwo)

	uc := NewBulkUpdateHistoricalUseCase(store, fixedClock{today: testDate})
	ctx := context.Background()

	amountA := d(150)
	note := "recount"
	out, err := uc.Execute(ctx, BulkUpdateHistoricalInput{
		Updates: []BulkHistoricalUpdate{
			{TransactionID: txA.ID, Amount: &amountA},
			{TransactionID: txB.ID, Note: &note},
			{TransactionID: txC.ID, Note: &note},
		},
		ActorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.UpdatedCount != 3 {
		t.Errorf("UpdatedCount = %d, want 3", out.UpdatedCount)
	}

	wantDates := []string{dayOne.Format("2006-01-02"), dayTwo.Format("2006-01-02")}
	if len(out.AffectedDates) != 2 || out.AffectedDates[0] != wantDates[0] || out.AffectedDates[1] != wantDates[1] {
		t.Errorf("AffectedDates = %v, want %v", out.AffectedDates, wantDates)
	}
	if len(out.AffectedAccounts) != 2 {
		t.Errorf("AffectedAccounts = %v, want two accounts", out.AffectedAccounts)
	}
	if !sort.SliceIsSorted(out.AffectedAccounts, func(i, j int) bool {
		return out.AffectedAccounts[i].String() < out.AffectedAccounts[j].String()
	}) {
		t.Error("AffectedAccounts should be sorted")
	}

	// Field changes applied, balances untouched, both closed days reopened.
	stored, _ := store.GetTransaction(ctx, txA.ID)
	if !stored.Amount.Equal(d(150)) {
		t.Errorf("txA amount = %s, want 150", stored.Amount)
	}
	stored, _ = store.GetTransaction(ctx, txB.ID)
	if stored.Note != "recount" {
		t.Errorf("txB note = %q, want %q", stored.Note, "recount")
	}
	gotFirst, _ := store.GetAccount(ctx, first.ID)
	if !gotFirst.CurrentBalance.Equal(d(1000)) {
		t.Errorf("first account balance = %s, want untouched 1000", gotFirst.CurrentBalance)
	}
	for _, day := range []struct {
		accountID uuid.UUID
		date      time.Time
	}{{first.ID, dayOne}, {second.ID, dayTwo}} {
		record, findErr := store.FindDailyBalance(ctx, day.accountID, day.date)
		if findErr != nil {
			t.Fatalf("unexpected error: %v", findErr)
		}
		if record.IsClosed {
			t.Errorf("day %s should be reopened", day.date.Format("2006-01-02"))
		}
	}

	// One audit row for the whole run.
	if len(store.corrections) != 1 {
		t.Fatalf("corrections = %d, want 1", len(store.corrections))
	}
	audit := store.corrections[0]
	if audit.UpdatedCount != 3 || len(audit.AffectedDates) != 2 || len(audit.AffectedAccounts) != 2 {
		t.Errorf("audit row = %+v, want 3 updates over 2 days and 2 accounts", audit)
	}
}

func TestBulkUpdateHistorical_EmptyList(t *testing.T) {
	uc := NewBulkUpdateHistoricalUseCase(newFakeStore(), fixedClock{today: testDate})

	_, err := uc.Execute(context.Background(), BulkUpdateHistoricalInput{ActorID: uuid.New()})
	if !errors.Is(err, domainerror.ErrEmptyBulkUpdate) {
		t.Errorf("expected ErrEmptyBulkUpdate, got %v", err)
	}
}

func TestBulkUpdateHistorical_UnknownTransactionFailsRun(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	tx := store.addTransaction(account.ID, testDate.AddDate(0, 0, -1), entity.TransactionTypeDeposit, 100)
	uc := NewBulkUpdateHistoricalUseCase(store, fixedClock{today: testDate})

	note := "recount"
	_, err := uc.Execute(context.Background(), BulkUpdateHistoricalInput{
		Updates: []BulkHistoricalUpdate{
			{TransactionID: tx.ID, Note: &note},
			{TransactionID: uuid.New(), Note: &note},
		},
		ActorID: uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if len(store.corrections) != 0 {
		t.Error("no audit row should be written for a failed run")
	}
}

func TestBulkUpdateHistorical_InvalidAmount(t *testing.T) {
	store := newFakeStore()
	account := store.addAccount("Main Branch Cash", d(1000))
	tx := store.addTransaction(account.ID, testDate.AddDate(0, 0, -1), entity.TransactionTypeDeposit, 100)
	uc := NewBulkUpdateHistoricalUseCase(store, fixedClock{today: testDate})

	bad := d(0)
	_, err := uc.Execute(context.Background(), BulkUpdateHistoricalInput{
		Updates: []BulkHistoricalUpdate{{TransactionID: tx.ID, Amount: &bad}},
		ActorID: uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/branchledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	AccountID           string  `json:"account_id" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	Time                string  `json:"time,omitempty"`
	Type                string  `json:"type" binding:"required,oneof=deposit withdrawal expense transfer"`
	Amount              string  `json:"amount" binding:"required"`
	CategoryID          *string `json:"category_id,omitempty"`
	Note                string  `json:"note,omitempty" binding:"omitempty,max=1000"`
	TransferToAccountID *string `json:"transfer_to_account_id,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Date, time and type are fixed at creation and not amendable.
type UpdateTransactionRequest struct {
	Amount        *string `json:"amount,omitempty"`
	Note          *string `json:"note,omitempty" binding:"omitempty,max=1000"`
	CategoryID    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
}

// BulkHistoricalUpdateItem is one correction inside a bulk historical update.
type BulkHistoricalUpdateItem struct {
	TransactionID string  `json:"transaction_id" binding:"required"`
	Amount        *string `json:"amount,omitempty"`
	Note          *string `json:"note,omitempty" binding:"omitempty,max=1000"`
	CategoryID    *string `json:"category_id,omitempty"`
}

// BulkUpdateHistoricalRequest represents the request body for a bulk correction.
type BulkUpdateHistoricalRequest struct {
	Updates []BulkHistoricalUpdateItem `json:"updates" binding:"required,min=1"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	AccountID           string    `json:"account_id"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Type                string    `json:"type"`
	Amount              string    `json:"amount"`
	BalanceAfter        string    `json:"balance_after"`
	CategoryID          *string   `json:"category_id,omitempty"`
	Note                string    `json:"note"`
	ReferenceNumber     string    `json:"reference_number"`
	PairedTransactionID *string   `json:"paired_transaction_id,omitempty"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CreateTransactionResponse represents the response for transaction creation.
type CreateTransactionResponse struct {
	Transaction          TransactionResponse  `json:"transaction"`
	PairedTransaction    *TransactionResponse `json:"paired_transaction,omitempty"`
	ReopenedDailyBalance bool                 `json:"reopened_daily_balance"`
}

// UpdateTransactionResponse represents the response for transaction update.
type UpdateTransactionResponse struct {
	Transaction          TransactionResponse `json:"transaction"`
	IsHistoricalUpdate   bool                `json:"is_historical_update"`
	ReopenedDailyBalance bool                `json:"reopened_daily_balance"`
}

// DeleteTransactionResponse represents the response for transaction deletion.
type DeleteTransactionResponse struct {
	IsHistoricalDeletion bool `json:"is_historical_deletion"`
	ReopenedDailyBalance bool `json:"reopened_daily_balance"`
}

// BulkUpdateHistoricalResponse represents the response for a bulk correction.
type BulkUpdateHistoricalResponse struct {
	UpdatedCount     int      `json:"updated_count"`
	AffectedDates    []string `json:"affected_dates"`
	AffectedAccounts []string `json:"affected_accounts"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	var categoryID *string
	if tx.CategoryID != nil {
		s := tx.CategoryID.String()
		categoryID = &s
	}

	var pairedID *string
	if tx.PairedTransactionID != nil {
		s := tx.PairedTransactionID.String()
		pairedID = &s
	}

	return TransactionResponse{
		ID:                  tx.ID.String(),
		AccountID:           tx.AccountID.String(),
		Date:                tx.Date.Format("2006-01-02"),
		Time:                tx.Time,
		Type:                string(tx.Type),
		Amount:              tx.Amount.String(),
		BalanceAfter:        tx.BalanceAfter.String(),
		CategoryID:          categoryID,
		Note:                tx.Note,
		ReferenceNumber:     tx.ReferenceNumber,
		PairedTransactionID: pairedID,
		CreatedBy:           tx.CreatedBy.String(),
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

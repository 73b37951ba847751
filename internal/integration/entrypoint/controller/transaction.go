// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/usecase/transaction"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/entrypoint/dto"
	"github.com/branchledger/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase     *transaction.CreateTransactionUseCase
	updateUseCase     *transaction.UpdateTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionUseCase
	bulkUpdateUseCase *transaction.BulkUpdateHistoricalUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	bulkUpdateUseCase *transaction.BulkUpdateHistoricalUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		bulkUpdateUseCase: bulkUpdateUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		categoryID = &id
	}

	var transferTo *uuid.UUID
	if req.TransferToAccountID != nil && *req.TransferToAccountID != "" {
		id, err := uuid.Parse(*req.TransferToAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transfer destination account ID format",
			})
			return
		}
		transferTo = &id
	}

	timeOfDay := req.Time
	if timeOfDay == "" {
		timeOfDay = time.Now().UTC().Format("15:04:05")
	}

	input := transaction.CreateTransactionInput{
		Date:                date,
		Time:                timeOfDay,
		Type:                entity.TransactionType(req.Type),
		Amount:              amount,
		AccountID:           accountID,
		CategoryID:          categoryID,
		Note:                req.Note,
		TransferToAccountID: transferTo,
		ActorID:             actorID,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	response := dto.CreateTransactionResponse{
		Transaction:          dto.ToTransactionResponse(output.Transaction),
		ReopenedDailyBalance: output.ReopenedDailyBalance,
	}
	if output.PairedTransaction != nil {
		paired := dto.ToTransactionResponse(output.PairedTransaction)
		response.PairedTransaction = &paired
	}

	ctx.JSON(http.StatusCreated, response)
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Note:          req.Note,
		ClearCategory: req.ClearCategory,
		ActorID:       actorID,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
		input.Amount = &amount
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &id
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		Transaction:          dto.ToTransactionResponse(output.Transaction),
		IsHistoricalUpdate:   output.IsHistoricalUpdate,
		ReopenedDailyBalance: output.ReopenedDailyBalance,
	})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		ActorID:       actorID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		IsHistoricalDeletion: output.IsHistoricalDeletion,
		ReopenedDailyBalance: output.ReopenedDailyBalance,
	})
}

// BulkUpdateHistorical handles POST /transactions/bulk-historical requests.
func (c *TransactionController) BulkUpdateHistorical(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.BulkUpdateHistoricalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyBulkUpdate),
		})
		return
	}

	updates := make([]transaction.BulkHistoricalUpdate, 0, len(req.Updates))
	for _, item := range req.Updates {
		transactionID, err := uuid.Parse(item.TransactionID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format: " + item.TransactionID,
			})
			return
		}

		update := transaction.BulkHistoricalUpdate{
			TransactionID: transactionID,
			Note:          item.Note,
		}

		if item.Amount != nil {
			amount, err := decimal.NewFromString(*item.Amount)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid amount format",
					Code:  string(domainerror.ErrCodeInvalidAmount),
				})
				return
			}
			update.Amount = &amount
		}

		if item.CategoryID != nil && *item.CategoryID != "" {
			id, err := uuid.Parse(*item.CategoryID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid category ID format",
				})
				return
			}
			update.CategoryID = &id
		}

		updates = append(updates, update)
	}

	output, err := c.bulkUpdateUseCase.Execute(ctx.Request.Context(), transaction.BulkUpdateHistoricalInput{
		Updates: updates,
		ActorID: actorID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	accounts := make([]string, len(output.AffectedAccounts))
	for i, id := range output.AffectedAccounts {
		accounts[i] = id.String()
	}

	ctx.JSON(http.StatusOK, dto.BulkUpdateHistoricalResponse{
		UpdatedCount:     output.UpdatedCount,
		AffectedDates:    output.AffectedDates,
		AffectedAccounts: accounts,
	})
}

// handleTransactionError maps domain errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Account not found",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
	case errors.Is(err, domainerror.ErrTargetAccountNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Transfer destination account not found",
			Code:  string(domainerror.ErrCodeTargetAccountNotFound),
		})
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
	case errors.Is(err, domainerror.ErrInsufficientBalance):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "Insufficient balance for this operation",
			Code:  string(domainerror.ErrCodeInsufficientBalance),
		})
	case errors.Is(err, domainerror.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Amount must be positive",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
	case errors.Is(err, domainerror.ErrInvalidTransactionType):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction type",
			Code:  string(domainerror.ErrCodeInvalidTransactionType),
		})
	case errors.Is(err, domainerror.ErrMissingTransferDestination):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Transfer requires a destination account",
			Code:  string(domainerror.ErrCodeMissingTransferDestination),
		})
	case errors.Is(err, domainerror.ErrEmptyBulkUpdate):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Bulk update list cannot be empty",
			Code:  string(domainerror.ErrCodeEmptyBulkUpdate),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

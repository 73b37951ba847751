// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/usecase/dailybalance"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/entrypoint/dto"
	"github.com/branchledger/backend/internal/integration/entrypoint/middleware"
)

// DailyBalanceController handles daily balance endpoints.
type DailyBalanceController struct {
	calculateUseCase   *dailybalance.CalculateDailyBalanceUseCase
	closeUseCase       *dailybalance.CloseDailyBalanceUseCase
	autoCloseUseCase   *dailybalance.AutoCloseDailyBalanceUseCase
	reopenUseCase      *dailybalance.ReopenDailyBalanceUseCase
	recalculateUseCase *dailybalance.RecalculateFromUseCase
}

// NewDailyBalanceController creates a new daily balance controller instance.
func NewDailyBalanceController(
	calculateUseCase *dailybalance.CalculateDailyBalanceUseCase,
	closeUseCase *dailybalance.CloseDailyBalanceUseCase,
	autoCloseUseCase *dailybalance.AutoCloseDailyBalanceUseCase,
	reopenUseCase *dailybalance.ReopenDailyBalanceUseCase,
	recalculateUseCase *dailybalance.RecalculateFromUseCase,
) *DailyBalanceController {
	return &DailyBalanceController{
		calculateUseCase:   calculateUseCase,
		closeUseCase:       closeUseCase,
		autoCloseUseCase:   autoCloseUseCase,
		reopenUseCase:      reopenUseCase,
		recalculateUseCase: recalculateUseCase,
	}
}

// parseAccountAndDate extracts and validates the :id and :date URL parameters.
func parseAccountAndDate(ctx *gin.Context) (uuid.UUID, time.Time, bool) {
	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return uuid.Nil, time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return uuid.Nil, time.Time{}, false
	}

	return accountID, date, true
}

// Calculate handles GET /accounts/:id/daily-balances/:date requests.
// It returns a read-only preview of the day's aggregation.
func (c *DailyBalanceController) Calculate(ctx *gin.Context) {
	accountID, date, ok := parseAccountAndDate(ctx)
	if !ok {
		return
	}

	calc, err := c.calculateUseCase.Execute(ctx.Request.Context(), dailybalance.CalculateDailyBalanceInput{
		AccountID: accountID,
		Date:      date,
	})
	if err != nil {
		c.handleDailyBalanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalculationResponse(calc))
}

// Close handles POST /accounts/:id/daily-balances/:date/close requests.
func (c *DailyBalanceController) Close(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, date, ok := parseAccountAndDate(ctx)
	if !ok {
		return
	}

	var req dto.CloseDailyBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	actualBalance, err := decimal.NewFromString(req.ActualBalance)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid actual balance format",
		})
		return
	}

	record, err := c.closeUseCase.Execute(ctx.Request.Context(), dailybalance.CloseDailyBalanceInput{
		AccountID:     accountID,
		Date:          date,
		ActualBalance: actualBalance,
		ActorID:       actorID,
	})
	if err != nil {
		c.handleDailyBalanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyBalanceResponse(record))
}

// AutoClose handles POST /accounts/:id/daily-balances/:date/auto-close requests.
// Unlike Close it succeeds on an already closed day and overwrites the record.
func (c *DailyBalanceController) AutoClose(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, date, ok := parseAccountAndDate(ctx)
	if !ok {
		return
	}

	var req dto.CloseDailyBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	actualBalance, err := decimal.NewFromString(req.ActualBalance)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid actual balance format",
		})
		return
	}

	record, err := c.autoCloseUseCase.Execute(ctx.Request.Context(), dailybalance.CloseDailyBalanceInput{
		AccountID:     accountID,
		Date:          date,
		ActualBalance: actualBalance,
		ActorID:       actorID,
	})
	if err != nil {
		c.handleDailyBalanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyBalanceResponse(record))
}

// Reopen handles POST /accounts/:id/daily-balances/:date/reopen requests.
func (c *DailyBalanceController) Reopen(ctx *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Operator not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, date, ok := parseAccountAndDate(ctx)
	if !ok {
		return
	}

	err := c.reopenUseCase.Execute(ctx.Request.Context(), dailybalance.ReopenDailyBalanceInput{
		AccountID: accountID,
		Date:      date,
		ActorID:   actorID,
	})
	if err != nil {
		c.handleDailyBalanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Daily balance reopened",
	})
}

// RecalculateFrom handles POST /accounts/:id/daily-balances/recalculate requests.
func (c *DailyBalanceController) RecalculateFrom(ctx *gin.Context) {
	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	var req dto.RecalculateFromRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	fromDate, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	output, err := c.recalculateUseCase.Execute(ctx.Request.Context(), dailybalance.RecalculateFromInput{
		AccountID: accountID,
		FromDate:  fromDate,
	})
	if err != nil {
		c.handleDailyBalanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecalculateFromResponse{
		AffectedDayCount: output.AffectedDayCount,
	})
}

// handleDailyBalanceError maps domain errors to HTTP responses.
func (c *DailyBalanceController) handleDailyBalanceError(ctx *gin.Context, err error) {
	var dbErr *domainerror.DailyBalanceError
	if errors.As(err, &dbErr) && dbErr.Code == domainerror.ErrCodeInvalidDateRange {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dbErr.Message,
			Code:  string(dbErr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, domainerror.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Account not found",
			Code:  string(domainerror.ErrCodeAccountNotFound),
		})
	case errors.Is(err, domainerror.ErrAlreadyClosed):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "Daily balance is already closed",
			Code:  string(domainerror.ErrCodeAlreadyClosed),
		})
	case errors.Is(err, domainerror.ErrNotClosed):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "Daily balance is not closed",
			Code:  string(domainerror.ErrCodeNotClosed),
		})
	case errors.Is(err, domainerror.ErrCloseInProgress):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "A close is already in progress for this account and date",
			Code:  string(domainerror.ErrCodeCloseInProgress),
		})
	case errors.Is(err, domainerror.ErrDailyBalanceNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Daily balance record not found",
			Code:  string(domainerror.ErrCodeDailyBalanceNotFound),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// Service queues operator notifications onto the persistent email queue.
type Service struct {
	queue         adapter.EmailQueueRepository
	operatorEmail string
	operatorName  string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, operatorEmail, operatorName string) *Service {
	return &Service{
		queue:         queue,
		operatorEmail: operatorEmail,
		operatorName:  operatorName,
	}
}

// QueueCloseReport queues the daily close report for the branch operator.
func (s *Service) QueueCloseReport(ctx context.Context, input adapter.CloseReportInput) error {
	date := input.BalanceDate.Format("2006-01-02")
	subject := fmt.Sprintf("Daily close report: %s (%s)", input.AccountName, date)

	templateData := map[string]interface{}{
		"account_name":     input.AccountName,
		"balance_date":     date,
		"opening_balance":  input.OpeningBalance,
		"closing_balance":  input.ClosingBalance,
		"actual_balance":   input.ActualBalance,
		"unknown_deposits": input.UnknownDeposits,
		"profit":           input.Profit,
		"closed_by":        input.ClosedBy,
	}

	job := entity.NewEmailJob(
		entity.TemplateCloseReport,
		s.operatorEmail,
		s.operatorName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue close report email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.CloseReportNotifier.
var _ adapter.CloseReportNotifier = (*Service)(nil)

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for the persistent email queue.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves jobs ready to be processed.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update saves changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// DeleteOldSentJobs removes sent jobs older than the specified number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}

// SendEmailInput holds the data for sending a single email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult holds the provider response for a sent email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender delivers a single rendered email.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// CloseReportInput carries the figures of a freshly closed day for the
// operator notification.
type CloseReportInput struct {
	AccountName     string
	BalanceDate     time.Time
	OpeningBalance  string
	ClosingBalance  string
	ActualBalance   string
	UnknownDeposits string
	Profit          string
	ClosedBy        string
}

// CloseReportNotifier queues a close report notification. Implementations
// must be fire-and-forget: a queue failure never fails the close itself.
type CloseReportNotifier interface {
	QueueCloseReport(ctx context.Context, input CloseReportInput) error
}

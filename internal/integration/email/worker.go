// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

const (
	// cleanupInterval controls how often sent jobs are pruned from the queue.
	cleanupInterval = 24 * time.Hour
	// sentRetentionDays is how long sent jobs are kept for auditing.
	sentRetentionDays = 30
)

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		case <-cleanup.C:
			w.pruneSentJobs(ctx)
		}
	}
}

// pruneSentJobs drops sent jobs past the retention window.
func (w *Worker) pruneSentJobs(ctx context.Context) {
	deleted, err := w.queue.DeleteOldSentJobs(ctx, sentRetentionDays)
	if err != nil {
		slog.Error("Failed to prune sent email jobs", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Pruned sent email jobs", "count", deleted)
	}
}

// processBatch fetches and processes a batch of pending emails.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob processes a single email job.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true) // Template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		var emailErr *domainerror.EmailError
		isPermanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent successfully", "provider_id", result.ProviderID)
}

// handleFailure records a send failure and schedules a retry if attempts remain.
func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, sendErr error, permanent bool) {
	job.MarkFailed(sendErr, permanent)
	if err := w.queue.Update(ctx, job); err != nil {
		slog.Error("Failed to update failed email job", "job_id", job.ID, "error", err)
	}
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	templateName := string(job.TemplateType)

	var data interface{}
	switch job.TemplateType {
	case entity.TemplateCloseReport:
		data = templates.CloseReportData{
			AccountName:     getString(job.TemplateData, "account_name"),
			BalanceDate:     getString(job.TemplateData, "balance_date"),
			OpeningBalance:  getString(job.TemplateData, "opening_balance"),
			ClosingBalance:  getString(job.TemplateData, "closing_balance"),
			ActualBalance:   getString(job.TemplateData, "actual_balance"),
			UnknownDeposits: getString(job.TemplateData, "unknown_deposits"),
			Profit:          getString(job.TemplateData, "profit"),
			ClosedBy:        getString(job.TemplateData, "closed_by"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown email template: "+templateName,
			domainerror.ErrInvalidTemplate,
		)
	}

	return w.renderer.Render(templateName, data)
}

// getString safely extracts a string value from template data.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

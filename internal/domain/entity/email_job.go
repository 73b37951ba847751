// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

const (
	// TemplateCloseReport is the daily close report sent to branch operators
	// after a day is closed or auto-closed.
	TemplateCloseReport EmailTemplateType = "close_report"
)

const (
	maxSendAttempts = 3

	baseRetryDelay = 30 * time.Second
	maxRetryDelay  = 10 * time.Minute
)

// EmailJob represents an email in the queue waiting to be sent.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    maxSendAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the job for the worker loop.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records the provider message ID and finishes the job.
func (e *EmailJob) MarkSent(resendID string) {
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.finish()
}

// MarkFailed records the send error. Permanent errors and exhausted
// attempts finish the job as failed; otherwise it goes back to pending
// with a backoff delay.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.finish()
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(retryDelay(e.Attempts))
}

func (e *EmailJob) finish() {
	now := time.Now().UTC()
	e.ProcessedAt = &now
}

// retryDelay quadruples the wait per attempt, capped at maxRetryDelay.
func retryDelay(attempt int) time.Duration {
	d := baseRetryDelay
	for i := 1; i < attempt; i++ {
		d *= 4
	}
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

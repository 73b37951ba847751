package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	"github.com/branchledger/backend/internal/integration/email/templates"
)

// fakeQueue is an in-memory EmailQueueRepository for worker tests.
type fakeQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *fakeQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *fakeQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var result []*entity.EmailJob
	now := time.Now().UTC()
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			copied := *job
			result = append(result, &copied)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (q *fakeQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *fakeQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	job, ok := q.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	copied := *job
	return &copied, nil
}

func (q *fakeQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

var _ adapter.EmailQueueRepository = (*fakeQueue)(nil)

func newCloseReportJob() *entity.EmailJob {
	return entity.NewEmailJob(entity.TemplateCloseReport,
		"operator@branch.example", "Operator",
		"Daily close report: Main Branch Cash (2026-08-30)",
		map[string]interface{}{
			"account_name":     "Main Branch Cash",
			"balance_date":     "2026-08-30",
			"opening_balance":  "1000",
			"closing_balance":  "1150",
			"actual_balance":   "2000",
			"unknown_deposits": "850",
			"profit":           "700",
			"closed_by":        "operator@branch.example",
		})
}

func newTestWorker(queue *fakeQueue, sender adapter.EmailSender) *Worker {
	renderer, err := templates.NewRenderer()
	if err != nil {
		panic(err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorker_SendsCloseReport(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(queue, sender)
	ctx := context.Background()

	job := newCloseReportJob()
	if err := queue.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	worker.processBatch(ctx)

	if len(sender.SentEmails) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "operator@branch.example" {
		t.Errorf("To = %s", sent.To)
	}
	if !strings.Contains(sent.HTML, "Main Branch Cash") || !strings.Contains(sent.Text, "Main Branch Cash") {
		t.Error("rendered bodies should carry the account name")
	}
	if !strings.Contains(sent.Text, "850") {
		t.Error("rendered body should carry the unknown deposits figure")
	}

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusSent {
		t.Errorf("status = %s, want sent", stored.Status)
	}
	if stored.ResendID == "" {
		t.Error("provider id should be recorded")
	}
	if stored.ProcessedAt == nil {
		t.Error("ProcessedAt should be set")
	}
}

func TestWorker_TemporaryFailureReschedules(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("connection reset"), false)
	worker := newTestWorker(queue, sender)
	ctx := context.Background()

	job := newCloseReportJob()
	if err := queue.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	worker.processBatch(ctx)

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusPending {
		t.Errorf("status = %s, want pending for retry", stored.Status)
	}
	if stored.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", stored.Attempts)
	}
	if stored.LastError == "" {
		t.Error("LastError should be recorded")
	}
}

func TestWorker_PermanentFailureStopsRetrying(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("invalid recipient"), true)
	worker := newTestWorker(queue, sender)
	ctx := context.Background()

	job := newCloseReportJob()
	if err := queue.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	worker.processBatch(ctx)

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", stored.Status)
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(queue, sender)
	ctx := context.Background()

	job := entity.NewEmailJob(entity.EmailTemplateType("welcome"),
		"operator@branch.example", "Operator", "hello", nil)
	if err := queue.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	worker.processBatch(ctx)

	if len(sender.SentEmails) != 0 {
		t.Error("nothing should be sent for an unknown template")
	}
	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", stored.Status)
	}
}

func TestService_QueueCloseReport(t *testing.T) {
	queue := newFakeQueue()
	service := NewService(queue, "operator@branch.example", "Operator")
	ctx := context.Background()

	err := service.QueueCloseReport(ctx, adapter.CloseReportInput{
		AccountName:     "Main Branch Cash",
		BalanceDate:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		OpeningBalance:  "1000",
		ClosingBalance:  "1150",
		ActualBalance:   "2000",
		UnknownDeposits: "850",
		Profit:          "700",
		ClosedBy:        "operator@branch.example",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("queued %d jobs, want 1", len(queue.jobs))
	}
	for _, job := range queue.jobs {
		if job.TemplateType != entity.TemplateCloseReport {
			t.Errorf("template = %s, want close_report", job.TemplateType)
		}
		if !strings.Contains(job.Subject, "Main Branch Cash") || !strings.Contains(job.Subject, "2026-08-30") {
			t.Errorf("subject = %q", job.Subject)
		}
		if job.TemplateData["unknown_deposits"] != "850" {
			t.Error("template data should carry the reconciliation figures")
		}
	}
}

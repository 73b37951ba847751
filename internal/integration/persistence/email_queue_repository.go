// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/persistence/model"
)

// emailQueueRepository stores email jobs in the email_queue table.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a GORM-backed email queue.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

// Create enqueues a new email job.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			err,
		)
	}
	return nil
}

// GetPendingJobs returns up to limit pending jobs whose scheduled time
// has passed, oldest schedule first.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toJobs(rows), nil
}

// Update persists status transitions made by the worker.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// GetByID loads a single job.
func (r *emailQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailQueueModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailJobNotFound
		}
		return nil, err
	}
	return row.ToEntity(), nil
}

// DeleteOldSentJobs prunes sent jobs whose processing finished more than
// olderThanDays days ago and reports how many rows were removed.
func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	return res.RowsAffected, res.Error
}

func toJobs(rows []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs
}

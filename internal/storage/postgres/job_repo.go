package postgres

import (
	"context"
	"errors"

	"github.com/nyralei/scribeq/common"
	"github.com/nyralei/scribeq/internal/config"
	"github.com/nyralei/scribeq/internal/job"
	"github.com/nyralei/scribeq/internal/models"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ job.JobRepoInterface = (*JobRepository)(nil)

// Create inserts a new job record. Returns a StoreError on duplicate id or
// any underlying database failure.
func (r *JobRepository) Create(ctx context.Context, job *models.TranscriptionJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return &common.StoreError{Op: "create job", Err: err}
	}
	return nil
}

// ClaimNextPending atomically selects the oldest pending job, transitions it
// to processing, and returns the updated record. Returns nil when no pending
// job exists.
//
// The claim is a conditional update, not a read-then-write pair: the UPDATE
// re-checks status = 'pending', so if two claimers race on the same row only
// one observes an affected row. The loser returns nil and picks up the next
// row on its following poll.
func (r *JobRepository) ClaimNextPending(ctx context.Context) (*models.TranscriptionJob, error) {
	var claimed *models.TranscriptionJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidate models.TranscriptionJob
		err := tx.
			Where("status = ?", config.JobStatusPending).
			Order("created_at asc").
			Order("id asc").
			First(&candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.TranscriptionJob{}).
			Where("id = ? AND status = ?", candidate.ID, config.JobStatusPending).
			Update("status", config.JobStatusProcessing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Raced away by another claimer.
			return nil
		}

		if err := tx.First(&candidate, "id = ?", candidate.ID).Error; err != nil {
			return err
		}
		claimed = &candidate
		return nil
	})
	if err != nil {
		return nil, &common.StoreError{Op: "claim next pending", Err: err}
	}

	return claimed, nil
}

// Update persists the mutable fields of an existing record: status, outcome,
// metrics and completion timestamp. Returns ErrNotFound if the record no
// longer exists.
func (r *JobRepository) Update(ctx context.Context, job *models.TranscriptionJob) error {
	res := r.db.WithContext(ctx).Model(&models.TranscriptionJob{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":          job.Status,
			"transcript":      job.Transcript,
			"error_message":   job.ErrorMessage,
			"duration":        job.Duration,
			"processing_time": job.ProcessingTime,
			"completed_at":    job.CompletedAt,
		})
	if res.Error != nil {
		return &common.StoreError{Op: "update job", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Get retrieves a single job record by its id.
func (r *JobRepository) Get(ctx context.Context, id string) (*models.TranscriptionJob, error) {
	var job models.TranscriptionJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, &common.StoreError{Op: "get job", Err: err}
	}
	return &job, nil
}

// List returns the requested page ordered by created_at descending, plus the
// total count matching the filter. Page and limit validation belongs to the
// caller.
func (r *JobRepository) List(ctx context.Context, page, limit int, status string) ([]models.TranscriptionJob, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.TranscriptionJob{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, &common.StoreError{Op: "count jobs", Err: err}
	}

	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.TranscriptionJob
	if err := query.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, &common.StoreError{Op: "list jobs", Err: err}
	}

	return jobs, total, nil
}

// Delete removes a job record. Returns ErrNotFound if the record is absent.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.TranscriptionJob{}, "id = ?", id)
	if res.Error != nil {
		return &common.StoreError{Op: "delete job", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

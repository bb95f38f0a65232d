package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/maxaizer/job-intel/internal/entities"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// SaveSnapshot stores an ingested batch of postings under a snapshot ID.
func (repo *Jobs) SaveSnapshot(ctx context.Context, snapshotID string, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	records := lo.Map(jobs, func(job models.Job, _ int) entities.JobRecord {
		return entities.NewJobRecord(snapshotID, job)
	})
	return repo.db.WithContext(ctx).Create(&records).Error
}

func (repo *Jobs) GetSnapshot(ctx context.Context, snapshotID string) ([]models.Job, error) {
	var records []entities.JobRecord
	if err := repo.db.WithContext(ctx).Find(&records, "snapshot_id = ?", snapshotID).Error; err != nil {
		return nil, err
	}

	return lo.Map(records, func(r entities.JobRecord, _ int) models.Job {
		return r.ToJob()
	}), nil
}

// SnapshotIDs returns the stored snapshot IDs, most recent first.
func (repo *Jobs) SnapshotIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).
		Model(&entities.JobRecord{}).
		Distinct("snapshot_id").
		Order("snapshot_id DESC").
		Limit(limit).
		Pluck("snapshot_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *Jobs) UpdateClassification(ctx context.Context, snapshotID string, job models.Job) error {
	return repo.db.WithContext(ctx).
		Model(&entities.JobRecord{}).
		Where("snapshot_id = ? AND job_id = ?", snapshotID, job.ID).
		Updates(map[string]any{
			"technologies": entities.NewJobRecord(snapshotID, job).Technologies,
			"category":     job.Category,
			"experience":   job.Experience,
		}).Error
}

func (repo *Jobs) RemoveOldSnapshots(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.JobRecord{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}

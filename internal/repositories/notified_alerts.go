package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/maxaizer/job-intel/internal/entities"
	"gorm.io/gorm"
)

type NotifiedAlerts struct {
	db *gorm.DB
}

func NewNotifiedAlertsRepository(db *gorm.DB) *NotifiedAlerts {
	return &NotifiedAlerts{db: db}
}

func (n NotifiedAlerts) IsSentToUser(ctx context.Context, userID int64, jobID, alertType string) (bool, error) {
	var record entities.NotifiedAlert
	err := n.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ? AND alert_type = ?", userID, jobID, alertType).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = n.db.WithContext(ctx).
		Model(&entities.NotifiedAlert{}).
		Where("id = ?", record.ID).
		Update("last_checked_at", time.Now()).Error
	return true, err
}

func (n NotifiedAlerts) RecordAsSentToUser(ctx context.Context, userID int64, jobID, alertType string) error {
	return n.db.WithContext(ctx).Create(&entities.NotifiedAlert{
		UserID:        userID,
		JobID:         jobID,
		AlertType:     alertType,
		LastCheckedAt: time.Now(),
	}).Error
}

func (n NotifiedAlerts) RemoveOldAlerts(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := n.db.WithContext(ctx).Delete(&entities.NotifiedAlert{}, "last_checked_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}

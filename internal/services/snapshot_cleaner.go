package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type snapshotCleanupRepository interface {
	RemoveOldSnapshots(ctx context.Context, expirationTime time.Time) (int64, error)
}

type alertCleanupRepository interface {
	RemoveOldAlerts(ctx context.Context, expirationTime time.Time) (int64, error)
}

// SnapshotCleaner expires stored snapshots and stale notified-alert records
// once a day.
type SnapshotCleaner struct {
	jobs            snapshotCleanupRepository
	alerts          alertCleanupRepository
	cron            *cron.Cron
	retentionInDays int
}

func NewSnapshotCleaner(jobs snapshotCleanupRepository, alerts alertCleanupRepository,
	retentionInDays int) (*SnapshotCleaner, error) {

	if retentionInDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	sc := &SnapshotCleaner{
		jobs:            jobs,
		alerts:          alerts,
		cron:            cron.New(),
		retentionInDays: retentionInDays,
	}

	_, err := sc.cron.AddFunc("0 0 * * *", sc.cleanOldData)
	if err != nil {
		return nil, err
	}

	sc.cron.Start()
	log.Infof("snapshot cleaner started, retention in days: %d", sc.retentionInDays)
	return sc, nil
}

func (sc *SnapshotCleaner) Stop() {
	sc.cron.Stop()
}

func (sc *SnapshotCleaner) cleanOldData() {
	expirationTime := time.Now().Add(-time.Duration(sc.retentionInDays) * 24 * time.Hour)

	rowsAffected, err := sc.jobs.RemoveOldSnapshots(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean old snapshots: %v", err)
	} else {
		log.Infof("Old snapshots were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}

	rowsAffected, err = sc.alerts.RemoveOldAlerts(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean old notified alerts: %v", err)
	} else {
		log.Infof("Old notified alerts were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}

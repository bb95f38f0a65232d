package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/maxaizer/job-intel/internal/engine"
	"github.com/maxaizer/job-intel/internal/entities"
	"github.com/maxaizer/job-intel/internal/events"
	"github.com/maxaizer/job-intel/internal/logger"
	"github.com/maxaizer/job-intel/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type preferencesRepository interface {
	Get(ctx context.Context, limit int, offset int) ([]entities.StoredPreferences, error)
}

type snapshotRepository interface {
	SnapshotIDs(ctx context.Context, limit int) ([]string, error)
	GetSnapshot(ctx context.Context, snapshotID string) ([]models.Job, error)
	UpdateClassification(ctx context.Context, snapshotID string, job models.Job) error
}

type notifiedAlertRepository interface {
	IsSentToUser(ctx context.Context, userID int64, jobID, alertType string) (bool, error)
	RecordAsSentToUser(ctx context.Context, userID int64, jobID, alertType string) error
}

// AnalysisService periodically classifies the latest two stored snapshots,
// generates alerts per stored preference set and publishes them on the bus.
type AnalysisService struct {
	bus              EventBus.Bus
	classifier       *engine.Classifier
	alertGenerator   *engine.AlertGenerator
	preferences      preferencesRepository
	jobs             snapshotRepository
	notified         notifiedAlertRepository
	cache              *gocache.Cache
	analysisInterval   time.Duration
	onAnalysisComplete func()
}

func NewAnalysisService(bus EventBus.Bus, classifier *engine.Classifier, preferencesRepo preferencesRepository,
	jobsRepo snapshotRepository, notifiedRepo notifiedAlertRepository,
	analysisInterval time.Duration) *AnalysisService {

	return &AnalysisService{
		bus:              bus,
		classifier:       classifier,
		alertGenerator:   engine.NewAlertGenerator(classifier),
		preferences:      preferencesRepo,
		jobs:             jobsRepo,
		notified:         notifiedRepo,
		cache:            gocache.New(10*time.Minute, 20*time.Minute),
		analysisInterval: analysisInterval,
	}
}

// WithAnalysisCompleteCallback registers fn to be invoked after every
// analysis pass.
func (s *AnalysisService) WithAnalysisCompleteCallback(fn func()) {
	s.onAnalysisComplete = fn
}

func (s *AnalysisService) Run(ctx context.Context) {
	for {
		startTime := time.Now()
		log.Infof("running analysis at %v", time.Now())

		s.runAnalysis(ctx)
		if s.onAnalysisComplete != nil {
			s.onAnalysisComplete()
		}

		executionTime := time.Since(startTime)
		metrics.AnalysisDuration.Observe(executionTime.Seconds())
		log.Infof("analysis ended after %v", executionTime)

		var sleepTime time.Duration
		if executionTime <= s.analysisInterval {
			sleepTime = s.analysisInterval - executionTime
		} else {
			s.analysisInterval = executionTime + time.Hour
			log.Infof("analysis interval exceeded to %v", s.analysisInterval)
		}

		log.Infof("next analysis time is %v", time.Now().Add(sleepTime))
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleepTime):
		}
	}
}

func (s *AnalysisService) runAnalysis(ctx context.Context) {

	snapshotIDs, err := s.jobs.SnapshotIDs(ctx, 2)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get snapshot ids: %v", err)
		return
	}
	if len(snapshotIDs) == 0 {
		log.Info("no snapshots stored yet, nothing to analyze")
		return
	}

	newJobs, err := s.loadClassifiedSnapshot(ctx, snapshotIDs[0])
	if err != nil {
		return
	}

	var previousJobs []models.Job
	if len(snapshotIDs) > 1 {
		if previousJobs, err = s.loadClassifiedSnapshot(ctx, snapshotIDs[1]); err != nil {
			return
		}
	}

	var pageSize, handledTotal = 20, 0

	for offset := 0; ; offset += pageSize {

		storedPrefs, err := s.preferences.Get(ctx, pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get preferences: %v", err)
			break
		}
		if len(storedPrefs) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, stored := range storedPrefs {
			wg.Add(1)
			go func(stored entities.StoredPreferences) {
				defer wg.Done()
				s.analyzeForUser(ctx, stored, newJobs, previousJobs)
			}(stored)
		}

		wg.Wait()
		handledTotal += len(storedPrefs)
	}

	log.Infof("handled %v stored preference sets", handledTotal)
}

// loadClassifiedSnapshot loads a snapshot and classifies every posting that
// was stored without derived fields, persisting the result so the work is
// done once per posting.
func (s *AnalysisService) loadClassifiedSnapshot(ctx context.Context, snapshotID string) ([]models.Job, error) {

	start := time.Now()
	jobs, err := s.jobs.GetSnapshot(ctx, snapshotID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get snapshot %v: %v", snapshotID, err)
		return nil, err
	}

	for i, job := range jobs {
		if job.Category != "" {
			continue
		}
		if cached, found := s.cache.Get(classificationCacheID(job)); found {
			jobs[i] = cached.(models.Job)
			continue
		}

		classified := s.classifier.Classify(job)
		jobs[i] = classified
		metrics.ClassifiedJobsCounter.Inc()

		if err = s.jobs.UpdateClassification(ctx, snapshotID, classified); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to persist classification: %v", err)
		}
		if err = s.cache.Add(classificationCacheID(job), classified, gocache.DefaultExpiration); err != nil {
			log.Errorf("failed to add classification to cache: %v", err)
		}
	}

	metrics.AnalysisStepDuration.WithLabelValues("classification").Observe(time.Since(start).Seconds())
	return jobs, nil
}

func (s *AnalysisService) analyzeForUser(ctx context.Context, stored entities.StoredPreferences,
	newJobs, previousJobs []models.Job) {

	start := time.Now()
	alerts := s.alertGenerator.Generate(newJobs, stored.ToPreferences(), previousJobs)
	metrics.AnalysisStepDuration.WithLabelValues("alert_generation").Observe(time.Since(start).Seconds())

	for _, alert := range alerts {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.publishAlert(ctx, stored.UserID, alert); err == nil {
			metrics.RaisedAlertsCounter.WithLabelValues(string(alert.Type)).Inc()
		}
	}
}

func (s *AnalysisService) publishAlert(ctx context.Context, userID int64, alert models.JobAlert) error {

	if alert.Job != nil {
		wasSent, err := s.notified.IsSentToUser(ctx, userID, alert.Job.ID, string(alert.Type))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to check if alert was sent to user: %v", err)
			return err
		}
		if wasSent {
			return nil
		}

		if err = s.notified.RecordAsSentToUser(ctx, userID, alert.Job.ID, string(alert.Type)); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to record alert as sent to user: %v", err)
			return err
		}
	}

	s.bus.Publish(events.AlertRaisedTopic, events.AlertRaised{UserID: userID, Alert: alert})
	return nil
}

func classificationCacheID(job models.Job) string {
	descriptionHash := sha256.Sum256([]byte(job.Description))
	return hex.EncodeToString(descriptionHash[:])
}

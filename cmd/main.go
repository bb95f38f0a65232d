package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-intel/internal/config"
	"github.com/maxaizer/job-intel/internal/engine"
	"github.com/maxaizer/job-intel/internal/logger"
	"github.com/maxaizer/job-intel/internal/metrics"
	"github.com/maxaizer/job-intel/internal/repositories"
	"github.com/maxaizer/job-intel/internal/services"
	log "github.com/sirupsen/logrus"
)

func buildClassifier(cfg *config.Config) *engine.Classifier {

	vocab := engine.DefaultVocabulary()
	if cfg.Engine.VocabularyFile != "" {
		var err error
		if vocab, err = engine.LoadVocabulary(cfg.Engine.VocabularyFile); err != nil {
			log.Fatalf("can't load vocabulary: %v", err)
		}
	}
	return engine.NewClassifier(vocab)
}

func runAnalyzer(ctx context.Context, cfg *config.Config, classifier *engine.Classifier,
	jobs *repositories.Jobs, preferences *repositories.Preferences,
	notified *repositories.NotifiedAlerts, bus EventBus.Bus) *services.SnapshotCleaner {

	cleaner, err := services.NewSnapshotCleaner(jobs, notified, cfg.Engine.SnapshotRetentionDays)
	if err != nil {
		log.Fatalf("can't create cleaner: %v", err)
	}

	analyzer := services.NewAnalysisService(bus, classifier, preferences, jobs, notified,
		cfg.Engine.AnalysisInterval)
	go analyzer.Run(ctx)

	return cleaner
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	preferences := repositories.NewPreferencesRepository(dbContext.DB)
	notified := repositories.NewNotifiedAlertsRepository(dbContext.DB)

	bus := EventBus.New()
	classifier := buildClassifier(cfg)

	dispatcher, err := services.NewAlertDispatcher(bus, services.LogNotifier{},
		cfg.Alerts.MaxNotificationsPerSecond)
	if err != nil {
		log.Fatalf("can't create alert dispatcher: %v", err)
	}

	cleaner := runAnalyzer(ctx, cfg, classifier, jobs, preferences, notified, bus)

	<-ctx.Done()

	log.Info("Shutting down services...")
	cleaner.Stop()
	dispatcher.Stop()
	log.Info("Services stopped.")
}

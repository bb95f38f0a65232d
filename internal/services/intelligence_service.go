package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/maxaizer/job-intel/internal/engine"
	"github.com/maxaizer/job-intel/internal/metrics"
	"github.com/pkg/errors"
)

// IntelligenceService is the query surface over the pure engine: faceted
// search, relevance ranking, similarity, forecasting and career planning.
// It validates caller-supplied structures and records step metrics; the
// computations themselves stay in the engine package.
type IntelligenceService struct {
	classifier *engine.Classifier
	ranker     *engine.Ranker
	searcher   *engine.Searcher
	forecaster engine.Forecaster
	planner    *engine.CareerPlanner
	validate   *validator.Validate
}

func NewIntelligenceService(classifier *engine.Classifier, forecaster engine.Forecaster) *IntelligenceService {
	return &IntelligenceService{
		classifier: classifier,
		ranker:     engine.NewRanker(classifier),
		searcher:   engine.NewSearcher(classifier),
		forecaster: forecaster,
		planner:    engine.NewCareerPlanner(classifier, forecaster),
		validate:   validator.New(),
	}
}

func (s *IntelligenceService) Search(jobs []models.Job, criteria models.SearchCriteria,
	prefs *models.UserPreferences) ([]models.Job, error) {

	if err := s.validate.Struct(criteria); err != nil {
		return nil, errors.Wrap(err, "invalid search criteria")
	}

	start := time.Now()
	result := s.searcher.AdvancedJobSearch(jobs, criteria, prefs)
	metrics.AnalysisStepDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	return result, nil
}

func (s *IntelligenceService) RankByRelevance(jobs []models.Job, prefs models.UserPreferences) []engine.ScoredJob {

	start := time.Now()
	preferredLocation := ""
	if len(prefs.PreferredLocations) > 0 {
		preferredLocation = prefs.PreferredLocations[0]
	}
	ranked := s.ranker.RankJobsByRelevance(jobs, prefs.Skills, preferredLocation,
		prefs.DesiredSalary, prefs.PreferredTechnologies)
	metrics.AnalysisStepDuration.WithLabelValues("ranking").Observe(time.Since(start).Seconds())
	return ranked
}

func (s *IntelligenceService) FindSimilar(reference models.Job, jobs []models.Job, maxResults int) []engine.ScoredJob {
	return s.ranker.FindSimilarJobs(reference, jobs, maxResults)
}

func (s *IntelligenceService) Forecast(jobs []models.Job, forecastDays int) models.MarketPredictions {

	start := time.Now()
	predictions := s.forecaster.PredictMarketTrends(jobs, forecastDays)
	metrics.AnalysisStepDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	return predictions
}

func (s *IntelligenceService) PlanCareerPath(profile models.UserProfile, jobs []models.Job,
	targetPosition string) (models.CareerPathPlan, error) {

	if err := s.validate.Struct(profile); err != nil {
		return models.CareerPathPlan{}, errors.Wrap(err, "invalid user profile")
	}
	if targetPosition == "" {
		return models.CareerPathPlan{}, errors.New("target position must not be empty")
	}

	start := time.Now()
	plan := s.planner.GenerateCareerPathPlan(profile, jobs, targetPosition)
	metrics.AnalysisStepDuration.WithLabelValues("career_plan").Observe(time.Since(start).Seconds())
	return plan, nil
}

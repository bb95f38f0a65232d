package services

import (
	"testing"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/maxaizer/job-intel/internal/engine"
	"github.com/stretchr/testify/assert"
)

func newTestIntelligenceService() *IntelligenceService {
	classifier := engine.NewClassifier(engine.DefaultVocabulary())
	return NewIntelligenceService(classifier, engine.NewMarketForecaster(classifier))
}

func Test_Search_InvalidKeywordModeRejected(t *testing.T) {

	service := newTestIntelligenceService()

	criteria := models.SearchCriteria{KeywordMode: "sometimes"}

	result, err := service.Search([]models.Job{{ID: "1"}}, criteria, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search criteria")
	assert.Nil(t, result)
}

func Test_Search_NegativeSalaryBoundRejected(t *testing.T) {

	service := newTestIntelligenceService()

	criteria := models.SearchCriteria{SalaryMin: -1}

	_, err := service.Search(nil, criteria, nil)

	assert.Error(t, err)
}

func Test_Search_ValidCriteriaFilters(t *testing.T) {

	service := newTestIntelligenceService()

	jobs := []models.Job{
		{ID: "1", Title: "Go Developer", Description: "golang"},
		{ID: "2", Title: "Accountant", Description: "ledgers"},
	}

	result, err := service.Search(jobs, models.SearchCriteria{
		Keywords: []string{"go"}, KeywordMode: models.MatchAny,
	}, nil)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func Test_RankByRelevance_UsesFirstPreferredLocation(t *testing.T) {

	service := newTestIntelligenceService()

	jobs := []models.Job{
		{ID: "1", Description: "golang", Location: models.Location{Display: "Berlin"}},
		{ID: "2", Description: "golang", Location: models.Location{Display: "Oslo"}},
	}
	prefs := models.UserPreferences{Skills: []string{"golang"}, PreferredLocations: []string{"Berlin", "Oslo"}}

	ranked := service.RankByRelevance(jobs, prefs)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "1", ranked[0].Job.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func Test_FindSimilar_ExcludesReference(t *testing.T) {

	service := newTestIntelligenceService()

	reference := models.Job{ID: "ref", Description: "python"}
	jobs := []models.Job{reference, {ID: "1", Description: "python"}}

	similar := service.FindSimilar(reference, jobs, 10)

	assert.Len(t, similar, 1)
	assert.Equal(t, "1", similar[0].Job.ID)
}

func Test_Forecast_DelegatesToForecaster(t *testing.T) {

	service := newTestIntelligenceService()

	jobs := []models.Job{{ID: "1", Description: "python", Created: "2024-01-01T00:00:00"}}

	predictions := service.Forecast(jobs, 30)

	assert.Equal(t, 30, predictions.ForecastDays)
	assert.Equal(t, 1, predictions.SampleSize)
	assert.True(t, predictions.LowConfidence)
}

func Test_PlanCareerPath_InvalidProfileRejected(t *testing.T) {

	service := newTestIntelligenceService()

	_, err := service.PlanCareerPath(models.UserProfile{}, nil, "Architect")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user profile")
}

func Test_PlanCareerPath_EmptyTargetRejected(t *testing.T) {

	service := newTestIntelligenceService()

	profile := models.UserProfile{CurrentPosition: "Developer"}

	_, err := service.PlanCareerPath(profile, nil, "")

	assert.Error(t, err)
}

func Test_PlanCareerPath_ValidInputsProduceAPlan(t *testing.T) {

	service := newTestIntelligenceService()

	profile := models.UserProfile{
		CurrentPosition:  "Developer",
		Skills:           map[string]int{"Python": 3},
		WeeklyStudyHours: 5,
	}
	jobs := []models.Job{{ID: "1", Title: "Python Developer", Description: "python and django"}}

	plan, err := service.PlanCareerPath(profile, jobs, "Python Developer")

	assert.NoError(t, err)
	assert.Equal(t, "Python Developer", plan.TargetPosition)
	assert.NotEmpty(t, plan.SkillGaps)
}

package engine

import (
	"testing"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_FindSimilarJobs_ExcludesReferenceAndTruncates(t *testing.T) {

	ranker := NewRanker(newTestClassifier())

	reference := models.Job{ID: "ref", Title: "Go Developer", Description: "golang and docker"}
	jobs := []models.Job{
		reference,
		{ID: "1", Title: "Backend Developer", Description: "golang and docker"},
		{ID: "2", Title: "Backend Developer", Description: "golang"},
		{ID: "3", Title: "Designer", Description: "figma only"},
	}

	similar := ranker.FindSimilarJobs(reference, jobs, 2)

	assert.Len(t, similar, 2)
	for _, s := range similar {
		assert.NotEqual(t, "ref", s.Job.ID)
	}
	assert.Equal(t, "1", similar[0].Job.ID)
}

func Test_FindSimilarJobs_SortedByDescendingSimilarity(t *testing.T) {

	ranker := NewRanker(newTestClassifier())

	reference := models.Job{ID: "ref", Description: "python and django", SalaryMin: 80000, SalaryMax: 80000}
	jobs := []models.Job{
		{ID: "close", Description: "python and django", SalaryMin: 80000, SalaryMax: 80000},
		{ID: "far", Description: "ruby on rails", SalaryMin: 300000, SalaryMax: 300000},
	}

	similar := ranker.FindSimilarJobs(reference, jobs, 0)

	assert.Len(t, similar, 2)
	assert.Equal(t, "close", similar[0].Job.ID)
	assert.Greater(t, similar[0].Score, similar[1].Score)
}

func Test_FindSimilarJobs_SameCompanyScoresHigher(t *testing.T) {

	ranker := NewRanker(newTestClassifier())

	reference := models.Job{ID: "ref", Description: "python", Company: models.Company{Name: "Acme Inc."}}
	jobs := []models.Job{
		{ID: "other", Description: "python", Company: models.Company{Name: "Globex LLC"}},
		{ID: "same", Description: "python", Company: models.Company{Name: "Acme"}},
	}

	similar := ranker.FindSimilarJobs(reference, jobs, 0)

	assert.Equal(t, "same", similar[0].Job.ID)
	assert.InDelta(t, 0.1, similar[0].Score-similar[1].Score, 0.0001)
}

func Test_TechnologyOverlap_IntersectionOverLargerSet(t *testing.T) {

	assert.Equal(t, 0.0, technologyOverlap(nil, []string{"Go"}))
	assert.Equal(t, 1.0, technologyOverlap([]string{"Go", "Docker"}, []string{"docker", "go"}))
	assert.Equal(t, 0.25, technologyOverlap([]string{"Go"}, []string{"Go", "Java", "React", "Vue"}))
}

func Test_SalaryCloseness_FlatScoreWithoutSalaryData(t *testing.T) {

	with := models.Job{SalaryMin: 100000, SalaryMax: 100000}

	assert.Equal(t, 0.1, salaryCloseness(models.Job{}, with))
	assert.Equal(t, 0.2, salaryCloseness(with, with))
	assert.InDelta(t, 0.1, salaryCloseness(with, models.Job{SalaryMin: 50000, SalaryMax: 50000}), 0.0001)
}

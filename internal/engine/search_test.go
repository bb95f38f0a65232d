package engine

import (
	"testing"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func newTestSearcher() *Searcher {
	return NewSearcher(newTestClassifier())
}

func searchResultIDs(jobs []models.Job) []string {
	return lo.Map(jobs, func(j models.Job, _ int) string { return j.ID })
}

func Test_AdvancedJobSearch_EmptyCriteriaReturnsEverything(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{{ID: "1"}, {ID: "2"}}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{}, nil)

	assert.Len(t, result, 2)
}

func Test_AdvancedJobSearch_KeywordAnyVersusAll(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Title: "Go Developer", Description: "backend services"},
		{ID: "2", Title: "Rust Developer", Description: "systems programming"},
		{ID: "3", Title: "Go and Rust Developer", Description: "polyglot"},
	}

	anyMode := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		Keywords: []string{"go", "rust"}, KeywordMode: models.MatchAny,
	}, nil)
	allMode := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		Keywords: []string{"go", "rust"}, KeywordMode: models.MatchAll,
	}, nil)

	assert.ElementsMatch(t, []string{"1", "2", "3"}, searchResultIDs(anyMode))
	assert.ElementsMatch(t, []string{"3"}, searchResultIDs(allMode))
	// ALL narrows ANY
	assert.Subset(t, searchResultIDs(anyMode), searchResultIDs(allMode))
}

func Test_AdvancedJobSearch_TechnologyFilterUsesExtendedAliases(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Description: "we run k8s clusters"},
		{ID: "2", Description: "we run spreadsheets"},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		Technologies: []string{"Kubernetes"}, TechnologyMode: models.MatchAny,
	}, nil)

	assert.Equal(t, []string{"1"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_LocationExactVersusPartial(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Location: models.Location{Display: "Berlin"}},
		{ID: "2", Location: models.Location{Display: "Berlin, Germany"}},
	}

	exact := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		Locations: []string{"berlin"}, LocationMode: models.LocationExact,
	}, nil)
	partial := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		Locations: []string{"berlin"}, LocationMode: models.LocationPartial,
	}, nil)

	assert.Equal(t, []string{"1"}, searchResultIDs(exact))
	assert.ElementsMatch(t, []string{"1", "2"}, searchResultIDs(partial))
}

func Test_AdvancedJobSearch_CompanyFilterMatchesNormalizedNames(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Company: models.Company{Name: "Acme Inc."}},
		{ID: "2", Company: models.Company{Name: "Globex"}},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{Companies: []string{"Acme"}}, nil)

	assert.Equal(t, []string{"1"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_SalaryBoundsDropUnsalariedPostings(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "low", SalaryMin: 40000, SalaryMax: 40000},
		{ID: "mid", SalaryMin: 80000, SalaryMax: 80000},
		{ID: "high", SalaryMin: 200000, SalaryMax: 200000},
		{ID: "none"},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{SalaryMin: 50000, SalaryMax: 150000}, nil)

	assert.Equal(t, []string{"mid"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_RemoteOnly(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Location: models.Location{Display: "Remote (EU)"}},
		{ID: "2", Location: models.Location{Display: "Berlin"}},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{RemoteOnly: true}, nil)

	assert.Equal(t, []string{"1"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_RecencyWindowDropsOldAndUndatedPostings(t *testing.T) {

	searcher := newTestSearcher()

	recent := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	jobs := []models.Job{
		{ID: "recent", Created: recent + "T10:00:00"},
		{ID: "old", Created: "2020-01-01T10:00:00"},
		{ID: "undated"},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{MaxAgeInDays: 7}, nil)

	assert.Equal(t, []string{"recent"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_SortBySalaryDescendingWithIDTieBreak(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "b", SalaryMin: 80000, SalaryMax: 80000},
		{ID: "a", SalaryMin: 80000, SalaryMax: 80000},
		{ID: "c", SalaryMin: 120000, SalaryMax: 120000},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{
		SortBy: models.SortBySalary, SortDescending: true,
	}, nil)

	assert.Equal(t, []string{"c", "a", "b"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_SortByTitleAscending(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{
		{ID: "1", Title: "Zookeeper"},
		{ID: "2", Title: "Analyst"},
	}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{SortBy: models.SortByTitle}, nil)

	assert.Equal(t, []string{"2", "1"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_RelevanceSortWithoutPreferencesUsesQuality(t *testing.T) {

	searcher := newTestSearcher()

	rich := models.Job{
		ID:          "rich",
		Title:       "Senior Go Developer",
		Company:     models.Company{Name: "Acme"},
		Location:    models.Location{Display: "Berlin"},
		Description: "golang services with docker and kubernetes in a large platform team",
		SalaryMin:   90000,
		SalaryMax:   110000,
		URL:         "https://example.com/1",
		Created:     "2026-08-01T00:00:00",
	}
	bare := models.Job{ID: "bare"}

	result := searcher.AdvancedJobSearch([]models.Job{bare, rich}, models.SearchCriteria{
		SortBy: models.SortByRelevance, SortDescending: true,
	}, nil)

	assert.Equal(t, []string{"rich", "bare"}, searchResultIDs(result))
}

func Test_AdvancedJobSearch_MaxResultsTruncates(t *testing.T) {

	searcher := newTestSearcher()

	jobs := []models.Job{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	result := searcher.AdvancedJobSearch(jobs, models.SearchCriteria{MaxResults: 2}, nil)

	assert.Len(t, result, 2)
}

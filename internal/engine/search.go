package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

// Searcher applies the faceted filter/sort pipeline over a posting snapshot.
type Searcher struct {
	classifier *Classifier
	ranker     *Ranker
}

func NewSearcher(classifier *Classifier) *Searcher {
	return &Searcher{classifier: classifier, ranker: NewRanker(classifier)}
}

// AdvancedJobSearch narrows the snapshot through a sequential AND-pipeline
// of pure predicates, then sorts and truncates. Each stage only removes
// candidates, so stage order never changes the result set. Preferences are
// only consulted for relevance sorting; passing nil falls back to the
// quality score.
func (s *Searcher) AdvancedJobSearch(jobs []models.Job, criteria models.SearchCriteria,
	prefs *models.UserPreferences) []models.Job {

	result := jobs
	result = s.filterKeywords(result, criteria.Keywords, criteria.KeywordMode)
	result = s.filterTechnologies(result, criteria.Technologies, criteria.TechnologyMode)
	result = filterLocations(result, criteria.Locations, criteria.LocationMode)
	result = filterAllowList(result, criteria.Companies, func(job models.Job) string {
		return NormalizeCompanyName(job.Company.Name)
	})
	result = filterAllowList(result, criteria.JobTypes, func(job models.Job) string {
		return job.Category
	})
	result = s.filterExperience(result, criteria.ExperienceLevels)
	result = filterSalary(result, criteria.SalaryMin, criteria.SalaryMax)
	if criteria.RemoteOnly {
		result = lo.Filter(result, func(job models.Job, _ int) bool {
			return strings.Contains(strings.ToLower(job.Location.Display), "remote")
		})
	}
	result = filterRecency(result, criteria.MaxAgeInDays)

	result = s.sortResults(result, criteria, prefs)

	if criteria.MaxResults > 0 && len(result) > criteria.MaxResults {
		result = result[:criteria.MaxResults]
	}
	return result
}

func (s *Searcher) filterKeywords(jobs []models.Job, keywords []string, mode models.MatchMode) []models.Job {
	if len(keywords) == 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		text := strings.ToLower(job.Title + " " + job.Description)
		if mode == models.MatchAll {
			return lo.EveryBy(keywords, func(kw string) bool {
				return strings.Contains(text, strings.ToLower(kw))
			})
		}
		return lo.SomeBy(keywords, func(kw string) bool {
			return strings.Contains(text, strings.ToLower(kw))
		})
	})
}

func (s *Searcher) filterTechnologies(jobs []models.Job, technologies []string, mode models.MatchMode) []models.Job {
	if len(technologies) == 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		detected := s.detected(job)
		if mode == models.MatchAll {
			return lo.EveryBy(technologies, func(tech string) bool {
				return containsFold(detected, tech)
			})
		}
		return lo.SomeBy(technologies, func(tech string) bool {
			return containsFold(detected, tech)
		})
	})
}

func filterLocations(jobs []models.Job, locations []string, mode models.LocationMatchMode) []models.Job {
	if len(locations) == 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		display := strings.ToLower(job.Location.Display)
		return lo.SomeBy(locations, func(loc string) bool {
			locLower := strings.ToLower(loc)
			if mode == models.LocationExact {
				return display == locLower
			}
			return strings.Contains(display, locLower)
		})
	})
}

func filterAllowList(jobs []models.Job, allowed []string, key func(models.Job) string) []models.Job {
	if len(allowed) == 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		value := key(job)
		return lo.SomeBy(allowed, func(entry string) bool {
			return strings.EqualFold(value, entry) || strings.EqualFold(NormalizeCompanyName(entry), value)
		})
	})
}

func (s *Searcher) filterExperience(jobs []models.Job, levels []string) []models.Job {
	if len(levels) == 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		level := job.Experience
		if level == "" {
			level = string(s.classifier.DetectExperienceLevel(job))
		}
		return lo.SomeBy(levels, func(wanted string) bool {
			return strings.EqualFold(level, wanted)
		})
	})
}

func filterSalary(jobs []models.Job, min, max float64) []models.Job {
	if min <= 0 && max <= 0 {
		return jobs
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		avg := job.AverageSalary()
		if avg <= 0 {
			return false
		}
		if min > 0 && avg < min {
			return false
		}
		if max > 0 && avg > max {
			return false
		}
		return true
	})
}

// filterRecency keeps postings no older than maxAgeInDays, judged on the
// day-granularity date prefix of the creation timestamp. Postings with an
// unparseable date are dropped when a window is requested.
func filterRecency(jobs []models.Job, maxAgeInDays int) []models.Job {
	if maxAgeInDays <= 0 {
		return jobs
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeInDays)
	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		posted, err := time.Parse("2006-01-02", job.PostedDate())
		if err != nil {
			return false
		}
		return !posted.Before(cutoff.Truncate(24 * time.Hour))
	})
}

func (s *Searcher) sortResults(jobs []models.Job, criteria models.SearchCriteria,
	prefs *models.UserPreferences) []models.Job {

	sorted := make([]models.Job, len(jobs))
	copy(sorted, jobs)

	key := s.sortKeyFunc(criteria.SortBy, prefs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := key(sorted[i]), key(sorted[j])
		if criteria.SortDescending {
			a, b = b, a
		}
		if a.numeric != b.numeric {
			return a.numeric < b.numeric
		}
		if a.text != b.text {
			return a.text < b.text
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

type sortValue struct {
	numeric float64
	text    string
}

func (s *Searcher) sortKeyFunc(key models.SortKey, prefs *models.UserPreferences) func(models.Job) sortValue {
	switch key {
	case models.SortBySalary:
		return func(job models.Job) sortValue { return sortValue{numeric: job.AverageSalary()} }
	case models.SortByDate:
		return func(job models.Job) sortValue { return sortValue{text: job.PostedDate()} }
	case models.SortByCompany:
		return func(job models.Job) sortValue { return sortValue{text: strings.ToLower(job.Company.Name)} }
	case models.SortByLocation:
		return func(job models.Job) sortValue { return sortValue{text: strings.ToLower(job.Location.Display)} }
	case models.SortByTitle:
		return func(job models.Job) sortValue { return sortValue{text: strings.ToLower(job.Title)} }
	case models.SortByRelevance:
		if prefs != nil {
			p := *prefs
			return func(job models.Job) sortValue {
				return sortValue{numeric: s.ranker.relevanceScore(job,
					p.Skills, firstOrEmpty(p.PreferredLocations), p.DesiredSalary, p.PreferredTechnologies)}
			}
		}
		return func(job models.Job) sortValue { return sortValue{numeric: s.classifier.JobQualityScore(job)} }
	default:
		return func(job models.Job) sortValue { return sortValue{numeric: s.classifier.JobQualityScore(job)} }
	}
}

func (s *Searcher) detected(job models.Job) []string {
	if len(job.Technologies) > 0 {
		return job.Technologies
	}
	return s.classifier.ExtractTechnologiesExtended(job.Description)
}

func containsFold(haystack []string, needle string) bool {
	return lo.SomeBy(haystack, func(entry string) bool {
		return strings.EqualFold(entry, needle)
	})
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

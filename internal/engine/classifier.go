package engine

import (
	"sort"
	"strings"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

// Classifier tags postings with technologies, a category, an experience
// level and a data-quality score. It holds no state beyond the injected
// vocabulary; every method is a pure function of its inputs.
type Classifier struct {
	vocab Vocabulary
}

func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{vocab: vocab}
}

// ExtractTechnologies scans text for vocabulary aliases, case-insensitively,
// and returns the matched canonical names deduplicated and sorted.
func (c *Classifier) ExtractTechnologies(text string) []string {
	return c.extract(text, c.vocab.Technologies)
}

// ExtractTechnologiesExtended additionally matches the secondary alias table
// (framework and infrastructure shorthands like "k8s") and merges results.
func (c *Classifier) ExtractTechnologiesExtended(text string) []string {
	primary := c.extract(text, c.vocab.Technologies)
	secondary := c.extract(text, c.vocab.ExtendedAliases)
	merged := lo.Uniq(append(primary, secondary...))
	sort.Strings(merged)
	return merged
}

func (c *Classifier) extract(text string, aliases map[string]string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var found []string
	for alias, canonical := range aliases {
		if strings.Contains(lower, alias) {
			found = append(found, canonical)
		}
	}

	found = lo.Uniq(found)
	sort.Strings(found)
	return found
}

// CategorizeJob resolves a category with first-match precedence over the
// detected technologies, then over title keywords, then the default label.
// Ties between technologies are settled by rule position, never frequency.
func (c *Classifier) CategorizeJob(job models.Job) string {
	technologies := job.Technologies
	if len(technologies) == 0 {
		technologies = c.ExtractTechnologies(job.Description)
	}

	for _, rule := range c.vocab.Categories {
		for _, tech := range rule.Technologies {
			if lo.Contains(technologies, tech) {
				return rule.Name
			}
		}
	}

	titleLower := strings.ToLower(job.Title)
	for _, rule := range c.vocab.TitleCategories {
		if strings.Contains(titleLower, rule.Keyword) {
			return rule.Category
		}
	}

	return c.vocab.DefaultCategory
}

// DetectExperienceLevel scans title and description against the ordered
// keyword sets; Management outranks Senior outranks Entry. No hit from any
// set means Mid Level.
func (c *Classifier) DetectExperienceLevel(job models.Job) models.ExperienceLevel {
	text := strings.ToLower(job.Title + " " + job.Description)

	for _, kw := range c.vocab.ManagementKeywords {
		if strings.Contains(text, kw) {
			return models.Management
		}
	}
	for _, kw := range c.vocab.SeniorKeywords {
		if strings.Contains(text, kw) {
			return models.Senior
		}
	}
	for _, kw := range c.vocab.EntryKeywords {
		if strings.Contains(text, kw) {
			return models.EntryLevel
		}
	}

	return models.MidLevel
}

// JobQualityScore measures record completeness on a 0..100 scale: points for
// a usable title, company, location, salary data (with a bonus for a
// consistent full range), a substantive description, detected technologies,
// a URL and a creation date.
func (c *Classifier) JobQualityScore(job models.Job) float64 {
	var score float64

	if len(job.Title) > 5 {
		score += 10
	}
	if job.Company.Name != "" {
		score += 10
	}
	if job.Location.Display != "" {
		score += 10
	}
	if job.HasSalary() {
		score += 15
		if job.SalaryMin > 0 && job.SalaryMax > 0 && job.SalaryMin <= job.SalaryMax {
			score += 10
		}
	}
	if len(job.Description) > 50 {
		score += 20
	}

	technologies := job.Technologies
	if len(technologies) == 0 {
		technologies = c.ExtractTechnologies(job.Description)
	}
	if len(technologies) > 0 {
		score += 15
	}

	if job.URL != "" {
		score += 5
	}
	if job.Created != "" {
		score += 5
	}

	return clamp(score, 0, 100)
}

// Classify returns a copy of the posting with the derived fields filled in.
// The input record is never modified.
func (c *Classifier) Classify(job models.Job) models.Job {
	classified := job
	classified.Technologies = c.ExtractTechnologiesExtended(job.Description)
	classified.Category = c.CategorizeJob(classified)
	classified.Experience = string(c.DetectExperienceLevel(job))
	return classified
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

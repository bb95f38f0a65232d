package engine

import (
	"math"
	"strings"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

// FindSimilarJobs ranks postings by similarity to a reference posting:
// 0.3 for a category match, up to 0.4 for technology overlap, up to 0.2 for
// salary closeness (a flat 0.1 when either side lacks salary data) and 0.1
// for the same normalized company. The reference itself is excluded by ID;
// results are sorted by descending similarity with ascending-ID tie-break
// and truncated to maxResults.
func (r *Ranker) FindSimilarJobs(reference models.Job, jobs []models.Job, maxResults int) []ScoredJob {
	refCategory := r.category(reference)
	refTechnologies := r.detectedTechnologies(reference)
	refCompany := NormalizeCompanyName(reference.Company.Name)

	var scored []ScoredJob
	for _, job := range jobs {
		if job.ID == reference.ID {
			continue
		}

		var score float64
		if r.category(job) == refCategory {
			score += 0.3
		}
		score += 0.4 * technologyOverlap(refTechnologies, r.detectedTechnologies(job))
		score += salaryCloseness(reference, job)
		if refCompany != "" && NormalizeCompanyName(job.Company.Name) == refCompany {
			score += 0.1
		}

		scored = append(scored, ScoredJob{Job: job, Score: score})
	}

	sortScoredJobs(scored)
	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// technologyOverlap is |intersection| / max(|a|, |b|); 0 for empty sets.
func technologyOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	bLower := lo.Map(b, func(t string, _ int) string { return strings.ToLower(t) })
	intersection := 0
	for _, tech := range a {
		if lo.Contains(bLower, strings.ToLower(tech)) {
			intersection++
		}
	}

	return float64(intersection) / math.Max(float64(len(a)), float64(len(b)))
}

// salaryCloseness contributes up to 0.2; lacking salary data on either side
// yields a flat 0.1 so unsalaried postings are neither favored nor buried.
func salaryCloseness(a, b models.Job) float64 {
	avgA, avgB := a.AverageSalary(), b.AverageSalary()
	if avgA <= 0 || avgB <= 0 {
		return 0.1
	}
	return 0.2 * (1 - math.Abs(avgA-avgB)/math.Max(avgA, avgB))
}

func (r *Ranker) category(job models.Job) string {
	if job.Category != "" {
		return job.Category
	}
	return r.classifier.CategorizeJob(job)
}

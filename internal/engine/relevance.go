package engine

import (
	"sort"
	"strings"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

// ScoredJob pairs a posting with the score that ranked it.
type ScoredJob struct {
	Job   models.Job
	Score float64
}

// Ranker computes relevance and similarity scores over classified postings.
type Ranker struct {
	classifier *Classifier
}

func NewRanker(classifier *Classifier) *Ranker {
	return &Ranker{classifier: classifier}
}

// RankJobsByRelevance scores every posting against the user's skills,
// location, salary and technology preferences:
//
//	score = 0.40*tech + 0.25*location + 0.20*salary + 0.15*(quality/100)
//
// The result is the full input set sorted by descending score; equal scores
// are ordered by ascending job ID so ranking is reproducible regardless of
// input or fan-out order.
func (r *Ranker) RankJobsByRelevance(jobs []models.Job, userSkills []string, preferredLocation string,
	desiredSalary float64, preferredTechnologies []string) []ScoredJob {

	scored := lo.Map(jobs, func(job models.Job, _ int) ScoredJob {
		return ScoredJob{Job: job, Score: r.relevanceScore(job, userSkills, preferredLocation, desiredSalary, preferredTechnologies)}
	})

	sortScoredJobs(scored)
	return scored
}

func (r *Ranker) relevanceScore(job models.Job, userSkills []string, preferredLocation string,
	desiredSalary float64, preferredTechnologies []string) float64 {

	techScore := r.technologyScore(job, userSkills, preferredTechnologies)
	locationScore := locationScore(job, preferredLocation)
	salaryScore := salaryScore(job, desiredSalary)
	qualityScore := r.classifier.JobQualityScore(job)

	return 0.40*techScore + 0.25*locationScore + 0.20*salaryScore + 0.15*(qualityScore/100)
}

// technologyScore is 0..10: one point per detected technology found in the
// user's skills text, half a point extra when it is also an explicitly
// preferred technology, plus a bonus proportional to the matched share.
func (r *Ranker) technologyScore(job models.Job, userSkills []string, preferredTechnologies []string) float64 {
	technologies := r.detectedTechnologies(job)
	if len(technologies) == 0 {
		return 0
	}

	skillsText := strings.ToLower(strings.Join(userSkills, " "))
	preferredLower := lo.Map(preferredTechnologies, func(t string, _ int) string { return strings.ToLower(t) })

	var score float64
	matches := 0
	for _, tech := range technologies {
		techLower := strings.ToLower(tech)
		if skillsText != "" && strings.Contains(skillsText, techLower) {
			score++
			matches++
		}
		if lo.Contains(preferredLower, techLower) {
			score += 0.5
		}
	}

	score += 2 * float64(matches) / float64(len(technologies))
	return clamp(score, 0, 10)
}

// locationScore is 0..10, neutral 5 when the user stated no preference.
func locationScore(job models.Job, preferredLocation string) float64 {
	if preferredLocation == "" {
		return 5
	}

	jobLocation := strings.ToLower(job.Location.Display)
	preferred := strings.ToLower(preferredLocation)

	switch {
	case jobLocation == preferred:
		return 10
	case jobLocation != "" && (strings.Contains(jobLocation, preferred) || strings.Contains(preferred, jobLocation)):
		return 7
	case strings.Contains(jobLocation, "remote"):
		return 8
	case job.Location.Country != "" && strings.Contains(preferred, strings.ToLower(job.Location.Country)):
		return 6
	default:
		return 3
	}
}

// salaryScore is 0..10, neutral 5 without a desired salary and 3 when the
// posting carries no salary data.
func salaryScore(job models.Job, desiredSalary float64) float64 {
	if desiredSalary <= 0 {
		return 5
	}
	avg := job.AverageSalary()
	if avg <= 0 {
		return 3
	}

	ratio := avg / desiredSalary
	switch {
	case ratio >= 1.2:
		return 10
	case ratio >= 1.0:
		return 8
	case ratio >= 0.8:
		return 6
	case ratio >= 0.6:
		return 4
	default:
		return 2
	}
}

func (r *Ranker) detectedTechnologies(job models.Job) []string {
	if len(job.Technologies) > 0 {
		return job.Technologies
	}
	return r.classifier.ExtractTechnologies(job.Description)
}

// descending score, then ascending job ID
func sortScoredJobs(scored []ScoredJob) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Job.ID < scored[j].Job.ID
	})
}

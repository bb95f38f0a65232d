package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

const (
	salaryTrendThresholdPercent = 10.0
	companyHiringVolume         = 3
	skillGapShareThreshold      = 0.25
)

// AlertGenerator diffs two posting snapshots against a user's preferences
// and emits prioritized notifications. It owns no state and persists
// nothing; deduplication across runs is the caller's concern.
type AlertGenerator struct {
	classifier *Classifier
	ranker     *Ranker
}

func NewAlertGenerator(classifier *Classifier) *AlertGenerator {
	return &AlertGenerator{classifier: classifier, ranker: NewRanker(classifier)}
}

// Generate produces alerts for newJobs given the user's preferences and,
// optionally, the previous snapshot (nil disables the trend alert types).
// The result is ordered by descending priority, ties by descending match
// score.
func (g *AlertGenerator) Generate(newJobs []models.Job, prefs models.UserPreferences,
	previousJobs []models.Job) []models.JobAlert {

	now := time.Now()
	var alerts []models.JobAlert

	alerts = append(alerts, g.jobMatchAlerts(newJobs, prefs, now)...)
	if len(previousJobs) > 0 {
		alerts = append(alerts, g.salaryTrendAlerts(newJobs, previousJobs, now)...)
		alerts = append(alerts, g.technologyTrendAlerts(newJobs, previousJobs, prefs, now)...)
	}
	alerts = append(alerts, g.companyHiringAlerts(newJobs, prefs, now)...)
	alerts = append(alerts, g.skillGapAlerts(newJobs, prefs, now)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority != alerts[j].Priority {
			return alerts[i].Priority > alerts[j].Priority
		}
		return alerts[i].MatchScore > alerts[j].MatchScore
	})
	return alerts
}

// MatchScore is the 0..100 blend of technology, location and salary
// preference fit plus experience compatibility used to qualify JobMatch
// alerts against the user's threshold.
func (g *AlertGenerator) MatchScore(job models.Job, prefs models.UserPreferences) float64 {
	techFit := g.ranker.technologyScore(job, prefs.Skills, prefs.PreferredTechnologies) / 10
	locationFit := g.bestLocationFit(job, prefs.PreferredLocations)
	salaryFit := salaryScore(job, prefs.DesiredSalary) / 10
	experienceFit := experienceCompatibility(g.jobLevel(job), prefs.ExperienceLevel)

	score := 40*techFit + 20*locationFit + 25*salaryFit + 15*experienceFit
	return clamp(score, 0, 100)
}

// bestLocationFit takes the best 0..1 location fit across all preferred
// locations; no stated locations is neutral.
func (g *AlertGenerator) bestLocationFit(job models.Job, preferredLocations []string) float64 {
	if len(preferredLocations) == 0 {
		return 0.5
	}

	best := 0.0
	for _, preferred := range preferredLocations {
		if fit := locationScore(job, preferred) / 10; fit > best {
			best = fit
		}
	}
	return best
}

func (g *AlertGenerator) jobMatchAlerts(newJobs []models.Job, prefs models.UserPreferences,
	now time.Time) []models.JobAlert {

	var alerts []models.JobAlert
	for _, job := range newJobs {
		score := g.MatchScore(job, prefs)
		if score < prefs.MatchThreshold() {
			continue
		}

		job := job
		alerts = append(alerts, models.JobAlert{
			Type:       models.AlertJobMatch,
			Title:      fmt.Sprintf("New match: %s", job.Title),
			Message:    fmt.Sprintf("%s at %s matches your preferences (%.0f%%)", job.Title, job.Company.Name, score),
			Job:        &job,
			MatchScore: score,
			Priority:   matchPriority(score, job, prefs.DesiredSalary),
			CreatedAt:  now,
		})
	}
	return alerts
}

// matchPriority derives 1..10 from the match score, bumped when the posting
// pays well above the desired salary.
func matchPriority(score float64, job models.Job, desiredSalary float64) int {
	priority := int(math.Round(score / 10))
	if desiredSalary > 0 && job.AverageSalary() >= 1.2*desiredSalary {
		priority++
	}
	return clampInt(priority, 1, 10)
}

// salaryTrendAlerts reports salary shifts along two groupings: per category
// ("in Backend Development") and per technology ("for Python").
func (g *AlertGenerator) salaryTrendAlerts(newJobs, previousJobs []models.Job, now time.Time) []models.JobAlert {
	alerts := salaryShiftAlerts(g.categoryAverages(newJobs), g.categoryAverages(previousJobs), "in", now)
	return append(alerts, salaryShiftAlerts(g.technologyAverages(newJobs), g.technologyAverages(previousJobs), "for", now)...)
}

func salaryShiftAlerts(newAverages, prevAverages map[string]float64, scope string, now time.Time) []models.JobAlert {
	var alerts []models.JobAlert
	for _, group := range sortedKeys(newAverages) {
		newAvg := newAverages[group]
		prevAvg, ok := prevAverages[group]
		if !ok || prevAvg <= 0 {
			continue
		}

		changePercent := (newAvg - prevAvg) / prevAvg * 100
		if math.Abs(changePercent) < salaryTrendThresholdPercent {
			continue
		}

		direction := "up"
		if changePercent < 0 {
			direction = "down"
		}
		priority := 6
		if math.Abs(changePercent) >= 25 {
			priority = 8
		}
		alerts = append(alerts, models.JobAlert{
			Type:      models.AlertSalaryTrend,
			Title:     fmt.Sprintf("Salaries trending %s %s %s", direction, scope, group),
			Message:   fmt.Sprintf("Average salary %s %s moved %.1f%% between snapshots", scope, group, changePercent),
			Priority:  priority,
			CreatedAt: now,
		})
	}
	return alerts
}

func (g *AlertGenerator) categoryAverages(jobs []models.Job) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, job := range jobs {
		avg := job.AverageSalary()
		if avg <= 0 {
			continue
		}
		category := job.Category
		if category == "" {
			category = g.classifier.CategorizeJob(job)
		}
		sums[category] += avg
		counts[category]++
	}

	averages := make(map[string]float64, len(sums))
	for category, sum := range sums {
		averages[category] = sum / float64(counts[category])
	}
	return averages
}

func (g *AlertGenerator) technologyAverages(jobs []models.Job) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, job := range jobs {
		avg := job.AverageSalary()
		if avg <= 0 {
			continue
		}
		technologies := job.Technologies
		if len(technologies) == 0 {
			technologies = g.classifier.ExtractTechnologies(job.Description)
		}
		for _, tech := range technologies {
			sums[tech] += avg
			counts[tech]++
		}
	}

	averages := make(map[string]float64, len(sums))
	for tech, sum := range sums {
		averages[tech] = sum / float64(counts[tech])
	}
	return averages
}

func (g *AlertGenerator) technologyTrendAlerts(newJobs, previousJobs []models.Job,
	prefs models.UserPreferences, now time.Time) []models.JobAlert {

	newCounts := g.technologyCounts(newJobs)
	prevCounts := g.technologyCounts(previousJobs)

	var alerts []models.JobAlert
	for _, tech := range sortedKeys(newCounts) {
		count := newCounts[tech]
		if count <= prevCounts[tech] {
			continue
		}
		if !g.isWatched(tech, prefs) {
			continue
		}

		growth := count - prevCounts[tech]
		priority := clampInt(3+growth, 3, 8)
		alerts = append(alerts, models.JobAlert{
			Type:      models.AlertTechnologyTrend,
			Title:     fmt.Sprintf("%s demand is rising", tech),
			Message:   fmt.Sprintf("%s appeared in %d postings, up from %d", tech, count, prevCounts[tech]),
			Priority:  priority,
			CreatedAt: now,
		})
	}
	return alerts
}

func (g *AlertGenerator) isWatched(tech string, prefs models.UserPreferences) bool {
	if g.classifier.vocab.isEmerging(tech) {
		return true
	}
	return lo.ContainsBy(prefs.PreferredTechnologies, func(p string) bool {
		return strings.EqualFold(p, tech)
	})
}

func (g *AlertGenerator) technologyCounts(jobs []models.Job) map[string]int {
	counts := map[string]int{}
	for _, job := range jobs {
		technologies := job.Technologies
		if len(technologies) == 0 {
			technologies = g.classifier.ExtractTechnologies(job.Description)
		}
		for _, tech := range technologies {
			counts[tech]++
		}
	}
	return counts
}

func (g *AlertGenerator) companyHiringAlerts(newJobs []models.Job, prefs models.UserPreferences,
	now time.Time) []models.JobAlert {

	if len(prefs.PreferredCompanies) == 0 {
		return nil
	}

	counts := map[string]int{}
	for _, job := range newJobs {
		counts[NormalizeCompanyName(job.Company.Name)]++
	}

	var alerts []models.JobAlert
	for _, company := range prefs.PreferredCompanies {
		normalized := NormalizeCompanyName(company)
		if count := counts[normalized]; count >= companyHiringVolume {
			alerts = append(alerts, models.JobAlert{
				Type:      models.AlertCompanyHiring,
				Title:     fmt.Sprintf("%s is hiring", normalized),
				Message:   fmt.Sprintf("%s posted %d new positions", normalized, count),
				Priority:  7,
				CreatedAt: now,
			})
		}
	}
	return alerts
}

// skillGapAlerts flags technologies demanded by a sizeable share of the new
// snapshot that the user's skill list does not cover.
func (g *AlertGenerator) skillGapAlerts(newJobs []models.Job, prefs models.UserPreferences,
	now time.Time) []models.JobAlert {

	if len(newJobs) == 0 || len(prefs.Skills) == 0 {
		return nil
	}

	skillsText := strings.ToLower(strings.Join(prefs.Skills, " "))
	counts := g.technologyCounts(newJobs)

	var alerts []models.JobAlert
	for _, tech := range sortedKeys(counts) {
		share := float64(counts[tech]) / float64(len(newJobs))
		if share < skillGapShareThreshold {
			continue
		}
		if strings.Contains(skillsText, strings.ToLower(tech)) {
			continue
		}

		alerts = append(alerts, models.JobAlert{
			Type:      models.AlertSkillGap,
			Title:     fmt.Sprintf("Skill gap: %s", tech),
			Message:   fmt.Sprintf("%s is required by %.0f%% of new postings but is not in your skill set", tech, share*100),
			Priority:  4,
			CreatedAt: now,
		})
	}
	return alerts
}

func (g *AlertGenerator) jobLevel(job models.Job) models.ExperienceLevel {
	if job.Experience != "" {
		return models.ExperienceLevel(job.Experience)
	}
	return g.classifier.DetectExperienceLevel(job)
}

var experienceOrder = map[models.ExperienceLevel]int{
	models.EntryLevel: 0,
	models.MidLevel:   1,
	models.Senior:     2,
	models.Management: 3,
}

// experienceCompatibility maps the distance between the job's level and the
// user's stated level to a 0..1 fit. An unstated user level is neutral;
// Entry-level users score zero against Management postings.
func experienceCompatibility(jobLevel, userLevel models.ExperienceLevel) float64 {
	if userLevel == "" {
		return 0.5
	}

	jobRank, ok := experienceOrder[jobLevel]
	if !ok {
		jobRank = experienceOrder[models.MidLevel]
	}
	userRank, ok := experienceOrder[userLevel]
	if !ok {
		return 0.5
	}

	switch distance := abs(jobRank - userRank); distance {
	case 0:
		return 1
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

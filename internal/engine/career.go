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
	defaultWeeklyStudyHours = 5
	missingSkillBaseHours   = 60
	improvementHoursPerStep = 40
	maxBridgePositions      = 5
)

// CareerPlanner builds phased learning plans from a user profile, a market
// snapshot and a target role. Depends on the classifier for skill detection
// and on a Forecaster for the market-demand component of the success
// probability.
type CareerPlanner struct {
	classifier *Classifier
	forecaster Forecaster
}

func NewCareerPlanner(classifier *Classifier, forecaster Forecaster) *CareerPlanner {
	return &CareerPlanner{classifier: classifier, forecaster: forecaster}
}

// GenerateCareerPathPlan computes skill gaps against the target position's
// aggregate requirements, groups them into ordered learning phases, lays out
// a timeline, proposes bridge positions and estimates success probability.
// Degenerate inputs (no matching postings, empty profile) produce an empty
// but well-formed plan, never an error.
func (p *CareerPlanner) GenerateCareerPathPlan(profile models.UserProfile, marketJobs []models.Job,
	targetPosition string) models.CareerPathPlan {

	now := time.Now()
	plan := models.CareerPathPlan{
		CurrentPosition: profile.CurrentPosition,
		TargetPosition:  targetPosition,
		PrimaryStack:    p.primaryStack(profile),
		GeneratedAt:     now,
	}

	targetJobs := p.matchTargetPostings(marketJobs, targetPosition)
	requirements := p.aggregateRequirements(targetJobs)

	plan.SkillGaps = skillGaps(profile, requirements)
	plan.Phases = p.learningPhases(plan.SkillGaps)
	plan.TotalHours = lo.SumBy(plan.Phases, func(phase models.LearningPhase) float64 {
		return phase.EstimatedHours
	})

	weekly := profile.WeeklyStudyHours
	if weekly <= 0 {
		weekly = defaultWeeklyStudyHours
	}
	plan.TotalWeeks = int(math.Ceil(plan.TotalHours / weekly))
	plan.ExpectedCompletion = now.AddDate(0, 0, plan.TotalWeeks*7)

	plan.BridgePositions = p.bridgePositions(profile, marketJobs, requirements)

	plan.SuccessProbability = p.successProbability(profile, requirements, targetJobs, marketJobs, plan.TotalWeeks)
	plan.Confidence = confidenceLabel(plan.SuccessProbability)
	plan.Recommendations = recommendations(plan)

	return plan
}

// primaryStack groups the user's skills by category rule and picks the
// grouping with the highest summed proficiency.
func (p *CareerPlanner) primaryStack(profile models.UserProfile) string {
	if len(profile.Skills) == 0 {
		return p.classifier.vocab.DefaultCategory
	}

	weights := map[string]int{}
	for skill, level := range profile.Skills {
		for _, rule := range p.classifier.vocab.Categories {
			if containsFold(rule.Technologies, skill) {
				weights[rule.Name] += level
				break
			}
		}
	}
	if len(weights) == 0 {
		return p.classifier.vocab.DefaultCategory
	}

	best := ""
	for _, category := range sortedKeys(weights) {
		if best == "" || weights[category] > weights[best] {
			best = category
		}
	}
	return best
}

// matchTargetPostings selects postings whose title shares keywords with the
// target position. This is a keyword-overlap heuristic, not NLP.
func (p *CareerPlanner) matchTargetPostings(jobs []models.Job, targetPosition string) []models.Job {
	tokens := titleTokens(targetPosition)
	if len(tokens) == 0 {
		return nil
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		title := strings.ToLower(job.Title)
		return lo.SomeBy(tokens, func(token string) bool {
			return strings.Contains(title, token)
		})
	})
}

func titleTokens(position string) []string {
	fields := strings.Fields(strings.ToLower(position))
	return lo.Filter(fields, func(token string, _ int) bool {
		return len(token) > 2
	})
}

type skillRequirement struct {
	frequency     int
	requiredLevel int
	importance    float64
}

// aggregateRequirements extracts each required skill's frequency across the
// matching postings and an importance score from frequency and the level
// the postings demand.
func (p *CareerPlanner) aggregateRequirements(targetJobs []models.Job) map[string]skillRequirement {
	if len(targetJobs) == 0 {
		return nil
	}

	frequencies := map[string]int{}
	levelSums := map[string]int{}
	for _, job := range targetJobs {
		level := requiredLevelFor(p.jobLevel(job))
		for _, tech := range p.detected(job) {
			frequencies[tech]++
			levelSums[tech] += level
		}
	}

	requirements := make(map[string]skillRequirement, len(frequencies))
	for skill, freq := range frequencies {
		avgLevel := int(math.Round(float64(levelSums[skill]) / float64(freq)))
		share := float64(freq) / float64(len(targetJobs))
		requirements[skill] = skillRequirement{
			frequency:     freq,
			requiredLevel: avgLevel,
			importance:    clamp(share*float64(avgLevel)/5, 0, 1),
		}
	}
	return requirements
}

func requiredLevelFor(level models.ExperienceLevel) int {
	switch level {
	case models.EntryLevel:
		return 2
	case models.Senior, models.Management:
		return 4
	default:
		return 3
	}
}

// skillGaps diffs the profile against the aggregate requirements. Priority
// is 1..10 from gap size weighted by importance.
func skillGaps(profile models.UserProfile, requirements map[string]skillRequirement) []models.SkillGap {
	gaps := make([]models.SkillGap, 0, len(requirements))
	for _, skill := range sortedKeys(requirements) {
		req := requirements[skill]
		current := currentLevel(profile, skill)

		var status models.GapStatus
		switch {
		case current == 0:
			status = models.MissingSkill
		case current < req.requiredLevel:
			status = models.NeedsImprovement
		case current == req.requiredLevel:
			status = models.MeetsRequirements
		default:
			status = models.ExceedsRequirements
		}

		priority := 1
		if gap := req.requiredLevel - current; gap > 0 {
			priority = clampInt(int(math.Round(float64(gap)*(1+req.importance)*2)), 1, 10)
		}

		gaps = append(gaps, models.SkillGap{
			Skill:         skill,
			CurrentLevel:  current,
			RequiredLevel: req.requiredLevel,
			Frequency:     req.frequency,
			Importance:    req.importance,
			Status:        status,
			Priority:      priority,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Priority != gaps[j].Priority {
			return gaps[i].Priority > gaps[j].Priority
		}
		return gaps[i].Skill < gaps[j].Skill
	})
	return gaps
}

func currentLevel(profile models.UserProfile, skill string) int {
	for name, level := range profile.Skills {
		if strings.EqualFold(name, skill) {
			return level
		}
	}
	return 0
}

// learningPhases groups open gaps by skill category, ordered by the summed
// gap priority so the most pressing area is studied first.
func (p *CareerPlanner) learningPhases(gaps []models.SkillGap) []models.LearningPhase {
	open := lo.Filter(gaps, func(gap models.SkillGap, _ int) bool {
		return gap.Status == models.MissingSkill || gap.Status == models.NeedsImprovement
	})
	if len(open) == 0 {
		return nil
	}

	grouped := lo.GroupBy(open, func(gap models.SkillGap) string {
		return p.skillCategory(gap.Skill)
	})

	phases := make([]models.LearningPhase, 0, len(grouped))
	for _, category := range sortedKeys(grouped) {
		group := grouped[category]

		targets := map[string]int{}
		var hours float64
		skills := make([]string, 0, len(group))
		for _, gap := range group {
			skills = append(skills, gap.Skill)
			targets[gap.Skill] = gap.RequiredLevel
			hours += effortHours(gap)
		}

		phases = append(phases, models.LearningPhase{
			Name:           fmt.Sprintf("%s skills", category),
			Skills:         skills,
			TargetLevels:   targets,
			EstimatedHours: hours,
			Resources:      phaseResources(category),
			SuccessMetrics: phaseMetrics(group),
		})
	}

	priorityOf := func(phase models.LearningPhase) int {
		total := 0
		for _, gap := range open {
			if lo.Contains(phase.Skills, gap.Skill) {
				total += gap.Priority
			}
		}
		return total
	}
	sort.SliceStable(phases, func(i, j int) bool {
		pi, pj := priorityOf(phases[i]), priorityOf(phases[j])
		if pi != pj {
			return pi > pj
		}
		return phases[i].Name < phases[j].Name
	})
	return phases
}

func effortHours(gap models.SkillGap) float64 {
	steps := gap.RequiredLevel - gap.CurrentLevel
	if steps <= 0 {
		return 0
	}
	if gap.Status == models.MissingSkill {
		return missingSkillBaseHours + improvementHoursPerStep*float64(steps-1)
	}
	return improvementHoursPerStep * float64(steps)
}

func (p *CareerPlanner) skillCategory(skill string) string {
	for _, rule := range p.classifier.vocab.Categories {
		if containsFold(rule.Technologies, skill) {
			return rule.Name
		}
	}
	return "Foundations"
}

func phaseResources(category string) []string {
	return []string{
		fmt.Sprintf("Official documentation for the %s stack", category),
		"One guided project applying every skill in this phase",
		"Code review or mentoring sessions on submitted work",
	}
}

func phaseMetrics(gaps []models.SkillGap) []string {
	metrics := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		metrics = append(metrics, fmt.Sprintf("%s at level %d demonstrated in a project", gap.Skill, gap.RequiredLevel))
	}
	return metrics
}

// bridgePositions ranks postings with high overlap against the current
// skills and at least some exposure to the target requirements.
func (p *CareerPlanner) bridgePositions(profile models.UserProfile, marketJobs []models.Job,
	requirements map[string]skillRequirement) []models.BridgePosition {

	if len(profile.Skills) == 0 || len(requirements) == 0 {
		return nil
	}

	currentSkills := lo.Keys(profile.Skills)
	var bridges []models.BridgePosition
	for _, job := range marketJobs {
		detected := p.detected(job)
		if len(detected) == 0 {
			continue
		}

		overlap := technologyOverlap(detected, currentSkills)
		targetExposure := lo.CountBy(detected, func(tech string) bool {
			_, required := requirements[tech]
			return required && currentLevel(profile, tech) == 0
		})
		if overlap < 0.5 || targetExposure == 0 {
			continue
		}

		bridges = append(bridges, models.BridgePosition{
			JobID:           job.ID,
			Title:           job.Title,
			Company:         job.Company.Name,
			OverlapScore:    overlap,
			EstimatedSalary: job.AverageSalary(),
		})
	}

	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].OverlapScore != bridges[j].OverlapScore {
			return bridges[i].OverlapScore > bridges[j].OverlapScore
		}
		if bridges[i].EstimatedSalary != bridges[j].EstimatedSalary {
			return bridges[i].EstimatedSalary > bridges[j].EstimatedSalary
		}
		return bridges[i].JobID < bridges[j].JobID
	})
	if len(bridges) > maxBridgePositions {
		bridges = bridges[:maxBridgePositions]
	}
	return bridges
}

// successProbability blends skill overlap, a learning-capability proxy, the
// forecasted demand for the target role and timeline feasibility into 0..1.
func (p *CareerPlanner) successProbability(profile models.UserProfile, requirements map[string]skillRequirement,
	targetJobs, marketJobs []models.Job, totalWeeks int) float64 {

	overlap := requirementOverlap(profile, requirements)

	capability := clamp(profile.WeeklyStudyHours/10, 0, 1)*0.6 + clamp(profile.ExperienceYears/10, 0, 1)*0.4

	demand := clamp(float64(len(targetJobs))/20, 0, 1)
	if p.forecaster != nil && len(marketJobs) > 0 {
		predictions := p.forecaster.PredictMarketTrends(marketJobs, 90)
		demand = clamp(demand*0.5+predictions.Confidence*0.5, 0, 1)
	}

	feasibility := 1.0
	if totalWeeks > 52 {
		feasibility = 52 / float64(totalWeeks)
	}

	return clamp(0.35*overlap+0.25*capability+0.25*demand+0.15*feasibility, 0, 1)
}

func requirementOverlap(profile models.UserProfile, requirements map[string]skillRequirement) float64 {
	if len(requirements) == 0 {
		return 0
	}

	met := 0
	for skill, req := range requirements {
		if currentLevel(profile, skill) >= req.requiredLevel {
			met++
		}
	}
	return float64(met) / float64(len(requirements))
}

func confidenceLabel(probability float64) models.ConfidenceLabel {
	switch {
	case probability >= 0.7:
		return models.ConfidenceHigh
	case probability >= 0.4:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func recommendations(plan models.CareerPathPlan) []string {
	var recs []string
	if len(plan.Phases) > 0 {
		recs = append(recs, fmt.Sprintf("Start with the %q phase; it closes the highest-priority gaps", plan.Phases[0].Name))
	}
	if len(plan.BridgePositions) > 0 {
		recs = append(recs, fmt.Sprintf("Consider %q as a bridge role while studying", plan.BridgePositions[0].Title))
	}
	if plan.TotalWeeks > 52 {
		recs = append(recs, "The timeline exceeds a year; raising weekly study hours would shorten it considerably")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your current skills already satisfy the target role's common requirements")
	}
	return recs
}

func (p *CareerPlanner) detected(job models.Job) []string {
	if len(job.Technologies) > 0 {
		return job.Technologies
	}
	return p.classifier.ExtractTechnologiesExtended(job.Description)
}

func (p *CareerPlanner) jobLevel(job models.Job) models.ExperienceLevel {
	if job.Experience != "" {
		return models.ExperienceLevel(job.Experience)
	}
	return p.classifier.DetectExperienceLevel(job)
}

package engine

import (
	"testing"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func newTestCareerPlanner() *CareerPlanner {
	classifier := newTestClassifier()
	return NewCareerPlanner(classifier, NewMarketForecaster(classifier))
}

func careerTestProfile() models.UserProfile {
	return models.UserProfile{
		CurrentPosition:  "Developer",
		Skills:           map[string]int{"Python": 3, "Django": 1, "Docker": 5},
		ExperienceYears:  4,
		WeeklyStudyHours: 10,
	}
}

func careerTestMarket() []models.Job {
	return []models.Job{
		{
			ID:          "target",
			Title:       "Python Developer",
			Company:     models.Company{Name: "Acme"},
			Description: "python django docker kubernetes",
			SalaryMin:   90000,
			SalaryMax:   90000,
			Created:     "2024-01-01T00:00:00",
		},
		{ID: "noise", Title: "Accountant", Description: "spreadsheets", Created: "2024-01-02T00:00:00"},
	}
}

func Test_GenerateCareerPathPlan_SkillGapStatuses(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	byStatus := map[string]models.GapStatus{}
	for _, gap := range plan.SkillGaps {
		byStatus[gap.Skill] = gap.Status
	}

	assert.Equal(t, models.MissingSkill, byStatus["Kubernetes"])
	assert.Equal(t, models.NeedsImprovement, byStatus["Django"])
	assert.Equal(t, models.MeetsRequirements, byStatus["Python"])
	assert.Equal(t, models.ExceedsRequirements, byStatus["Docker"])
}

func Test_GenerateCareerPathPlan_GapsOrderedByDescendingPriority(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	assert.Equal(t, "Kubernetes", plan.SkillGaps[0].Skill)
	for i := 1; i < len(plan.SkillGaps); i++ {
		assert.GreaterOrEqual(t, plan.SkillGaps[i-1].Priority, plan.SkillGaps[i].Priority)
	}
}

func Test_GenerateCareerPathPlan_PhasesAndTimeline(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	// missing Kubernetes (3 levels) and improving Django (2 levels)
	assert.Len(t, plan.Phases, 2)
	assert.Equal(t, "Foundations skills", plan.Phases[0].Name)
	assert.Equal(t, 140.0, plan.Phases[0].EstimatedHours)
	assert.Equal(t, "Backend Development skills", plan.Phases[1].Name)
	assert.Equal(t, 80.0, plan.Phases[1].EstimatedHours)

	assert.Equal(t, 220.0, plan.TotalHours)
	assert.Equal(t, 22, plan.TotalWeeks) // 220h at 10h/week
	assert.True(t, plan.ExpectedCompletion.After(plan.GeneratedAt))
}

func Test_GenerateCareerPathPlan_BridgePositions(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	assert.NotEmpty(t, plan.BridgePositions)
	assert.Equal(t, "target", plan.BridgePositions[0].JobID)
	assert.GreaterOrEqual(t, plan.BridgePositions[0].OverlapScore, 0.5)
}

func Test_GenerateCareerPathPlan_SuccessProbabilityWithinRange(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	assert.GreaterOrEqual(t, plan.SuccessProbability, 0.0)
	assert.LessOrEqual(t, plan.SuccessProbability, 1.0)
	assert.NotEmpty(t, plan.Recommendations)
	assert.Contains(t, plan.Recommendations[0], "Foundations skills")
}

func Test_GenerateCareerPathPlan_EmptyMarketYieldsWellFormedPlan(t *testing.T) {

	planner := newTestCareerPlanner()

	profile := models.UserProfile{CurrentPosition: "Developer"}

	plan := planner.GenerateCareerPathPlan(profile, nil, "Architect")

	assert.Empty(t, plan.SkillGaps)
	assert.Empty(t, plan.Phases)
	assert.Empty(t, plan.BridgePositions)
	assert.Equal(t, 0.0, plan.TotalHours)
	assert.Equal(t, 0, plan.TotalWeeks)
	assert.Equal(t, models.ConfidenceLow, plan.Confidence)
	assert.NotEmpty(t, plan.Recommendations)
}

func Test_GenerateCareerPathPlan_PrimaryStackFollowsStrongestSkills(t *testing.T) {

	planner := newTestCareerPlanner()

	plan := planner.GenerateCareerPathPlan(careerTestProfile(), careerTestMarket(), "Python Developer")

	// Docker at level 5 outweighs Python at 3 and Django at 1
	assert.Equal(t, "DevOps/Cloud", plan.PrimaryStack)
}

func Test_EffortHours_MissingVersusImprovement(t *testing.T) {

	missing := models.SkillGap{CurrentLevel: 0, RequiredLevel: 3, Status: models.MissingSkill}
	improving := models.SkillGap{CurrentLevel: 1, RequiredLevel: 3, Status: models.NeedsImprovement}
	satisfied := models.SkillGap{CurrentLevel: 4, RequiredLevel: 3, Status: models.ExceedsRequirements}

	assert.Equal(t, 140.0, effortHours(missing))
	assert.Equal(t, 80.0, effortHours(improving))
	assert.Equal(t, 0.0, effortHours(satisfied))
}

func Test_ConfidenceLabel_Thresholds(t *testing.T) {

	assert.Equal(t, models.ConfidenceHigh, confidenceLabel(0.7))
	assert.Equal(t, models.ConfidenceMedium, confidenceLabel(0.4))
	assert.Equal(t, models.ConfidenceLow, confidenceLabel(0.39))
}

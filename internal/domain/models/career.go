package models

import "time"

// UserProfile is the planning input: where the user stands today.
// Skills maps a skill name to a proficiency level 1..5.
type UserProfile struct {
	CurrentPosition     string  `validate:"required"`
	Skills              map[string]int
	ExperienceYears     float64 `validate:"gte=0"`
	CurrentSalary       float64 `validate:"gte=0"`
	WeeklyStudyHours    float64 `validate:"gte=0"`
	LearningPreferences []string
}

type GapStatus string

const (
	MissingSkill        GapStatus = "MissingSkill"
	NeedsImprovement    GapStatus = "NeedsImprovement"
	MeetsRequirements   GapStatus = "MeetsRequirements"
	ExceedsRequirements GapStatus = "ExceedsRequirements"
)

type SkillGap struct {
	Skill         string
	CurrentLevel  int
	RequiredLevel int
	Frequency     int
	Importance    float64
	Status        GapStatus
	Priority      int
}

type LearningPhase struct {
	Name           string
	Skills         []string
	TargetLevels   map[string]int
	EstimatedHours float64
	Resources      []string
	SuccessMetrics []string
}

type BridgePosition struct {
	JobID           string
	Title           string
	Company         string
	OverlapScore    float64
	EstimatedSalary float64
}

type ConfidenceLabel string

const (
	ConfidenceHigh   ConfidenceLabel = "High"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceLow    ConfidenceLabel = "Low"
)

// CareerPathPlan is built once per planning request.
type CareerPathPlan struct {
	CurrentPosition    string
	TargetPosition     string
	PrimaryStack       string
	GeneratedAt        time.Time
	SkillGaps          []SkillGap
	Phases             []LearningPhase
	TotalHours         float64
	TotalWeeks         int
	ExpectedCompletion time.Time
	BridgePositions    []BridgePosition
	SuccessProbability float64
	Confidence         ConfidenceLabel
	Recommendations    []string
}

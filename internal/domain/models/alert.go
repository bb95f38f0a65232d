package models

import "time"

type AlertType string

const (
	AlertJobMatch        AlertType = "JobMatch"
	AlertSalaryTrend     AlertType = "SalaryTrend"
	AlertTechnologyTrend AlertType = "TechnologyTrend"
	AlertCompanyHiring   AlertType = "CompanyHiring"
	AlertSkillGap        AlertType = "SkillGap"
)

// JobAlert is a transient notification produced by one alert run.
// Priority is 1..10, higher means more urgent.
type JobAlert struct {
	Type       AlertType
	Title      string
	Message    string
	Job        *Job
	MatchScore float64
	Priority   int
	CreatedAt  time.Time
}

package models

import "strings"

type Company struct {
	Name string
	ID   string
}

type Location struct {
	Display string
	Area    string
	Country string
}

// Job is a single posting as supplied by the fetch/storage layer.
// Technologies, Category and Experience are derived by the classifier;
// the engine never mutates a caller's Job, it returns enriched copies.
type Job struct {
	ID           string
	Title        string
	Company      Company
	Location     Location
	SalaryMin    float64
	SalaryMax    float64
	Description  string
	URL          string
	Created      string
	Technologies []string
	Category     string
	Experience   string
}

func (j Job) HasSalary() bool {
	return j.SalaryMin > 0 || j.SalaryMax > 0
}

// AverageSalary returns the midpoint of the salary bounds, falling back to
// the single known bound. Zero when the posting carries no salary data.
func (j Job) AverageSalary() float64 {
	switch {
	case j.SalaryMin > 0 && j.SalaryMax > 0:
		return (j.SalaryMin + j.SalaryMax) / 2
	case j.SalaryMin > 0:
		return j.SalaryMin
	case j.SalaryMax > 0:
		return j.SalaryMax
	default:
		return 0
	}
}

// PostedDate returns the day-granularity date prefix of the creation
// timestamp ("2024-01-02T15:04:05Z" -> "2024-01-02").
func (j Job) PostedDate() string {
	if len(j.Created) < 10 {
		return j.Created
	}
	return j.Created[:10]
}

func (j Job) HasTechnology(tech string) bool {
	for _, t := range j.Technologies {
		if strings.EqualFold(t, tech) {
			return true
		}
	}
	return false
}

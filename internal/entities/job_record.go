package entities

import (
	"strings"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
)

// JobRecord is a stored posting, tagged with the ingest snapshot it arrived
// in. Derived fields are persisted so snapshots are classified only once.
type JobRecord struct {
	ID           int    `gorm:"primaryKey"`
	SnapshotID   string `gorm:"index"`
	JobID        string
	Title        string
	CompanyName  string
	CompanyID    string
	LocationName string
	LocationArea string
	Country      string
	SalaryMin    float64
	SalaryMax    float64
	Description  string
	URL          string
	Posted       string
	Technologies string
	Category     string
	Experience   string
	CreatedAt    time.Time
}

func NewJobRecord(snapshotID string, job models.Job) JobRecord {
	return JobRecord{
		SnapshotID:   snapshotID,
		JobID:        job.ID,
		Title:        job.Title,
		CompanyName:  job.Company.Name,
		CompanyID:    job.Company.ID,
		LocationName: job.Location.Display,
		LocationArea: job.Location.Area,
		Country:      job.Location.Country,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Description:  job.Description,
		URL:          job.URL,
		Posted:       job.Created,
		Technologies: strings.Join(job.Technologies, ","),
		Category:     job.Category,
		Experience:   job.Experience,
	}
}

func (r JobRecord) ToJob() models.Job {
	var technologies []string
	if r.Technologies != "" {
		technologies = strings.Split(r.Technologies, ",")
	}

	return models.Job{
		ID:           r.JobID,
		Title:        r.Title,
		Company:      models.Company{Name: r.CompanyName, ID: r.CompanyID},
		Location:     models.Location{Display: r.LocationName, Area: r.LocationArea, Country: r.Country},
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Description:  r.Description,
		URL:          r.URL,
		Created:      r.Posted,
		Technologies: technologies,
		Category:     r.Category,
		Experience:   r.Experience,
	}
}

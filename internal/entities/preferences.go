package entities

import (
	"strings"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
)

// StoredPreferences is a persisted user preference set, checked against
// every new snapshot by the analysis service.
type StoredPreferences struct {
	ID                    int `gorm:"primaryKey"`
	UserID                int64
	Skills                string
	PreferredTechnologies string
	PreferredLocations    string
	PreferredCompanies    string
	PreferredJobTypes     string
	ExperienceLevel       string
	DesiredSalary         float64
	MinMatchThreshold     float64
	CreatedAt             time.Time
}

func NewStoredPreferences(userID int64, prefs models.UserPreferences) StoredPreferences {
	return StoredPreferences{
		UserID:                userID,
		Skills:                strings.Join(prefs.Skills, ","),
		PreferredTechnologies: strings.Join(prefs.PreferredTechnologies, ","),
		PreferredLocations:    strings.Join(prefs.PreferredLocations, ","),
		PreferredCompanies:    strings.Join(prefs.PreferredCompanies, ","),
		PreferredJobTypes:     strings.Join(prefs.PreferredJobTypes, ","),
		ExperienceLevel:       string(prefs.ExperienceLevel),
		DesiredSalary:         prefs.DesiredSalary,
		MinMatchThreshold:     prefs.MinMatchThreshold,
	}
}

func (p StoredPreferences) ToPreferences() models.UserPreferences {
	return models.UserPreferences{
		Skills:                splitList(p.Skills),
		PreferredTechnologies: splitList(p.PreferredTechnologies),
		PreferredLocations:    splitList(p.PreferredLocations),
		PreferredCompanies:    splitList(p.PreferredCompanies),
		PreferredJobTypes:     splitList(p.PreferredJobTypes),
		ExperienceLevel:       models.ExperienceLevel(p.ExperienceLevel),
		DesiredSalary:         p.DesiredSalary,
		MinMatchThreshold:     p.MinMatchThreshold,
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

package models

const DefaultMatchThreshold = 70

type ExperienceLevel string

const (
	EntryLevel ExperienceLevel = "Entry Level"
	MidLevel   ExperienceLevel = "Mid Level"
	Senior     ExperienceLevel = "Senior"
	Management ExperienceLevel = "Management"
)

// UserPreferences describes what a user wants from the market. Supplied per
// call; the engine keeps no per-user state.
type UserPreferences struct {
	Skills                []string
	PreferredTechnologies []string
	PreferredLocations    []string
	PreferredCompanies    []string
	PreferredJobTypes     []string
	ExperienceLevel       ExperienceLevel
	DesiredSalary         float64
	MinMatchThreshold     float64
}

// MatchThreshold returns the configured threshold or the default when unset.
func (p UserPreferences) MatchThreshold() float64 {
	if p.MinMatchThreshold <= 0 {
		return DefaultMatchThreshold
	}
	return p.MinMatchThreshold
}

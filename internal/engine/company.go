package engine

import (
	"regexp"
	"strings"

	"github.com/maxaizer/job-intel/internal/domain/models"
)

var companySuffixes = []string{"Inc.", "Inc", "LLC", "Ltd.", "Corp.", "Corporation", "Company"}

// NormalizeCompanyName strips a legal suffix and surrounding whitespace so
// that "Acme Inc." and "Acme" compare equal.
//
// Known limitation: truncation happens at the first occurrence of a suffix
// substring anywhere in the name, so a name like "Incline Corp" is cut at
// "Inc". Anchoring the match to the end of the string would change observed
// behavior and is deliberately not done here.
func NormalizeCompanyName(name string) string {
	if name == "" {
		return ""
	}

	normalized := name
	for _, suffix := range companySuffixes {
		if pos := strings.Index(normalized, suffix); pos != -1 {
			normalized = normalized[:pos]
		}
	}

	return strings.TrimSpace(normalized)
}

var cityAreaPattern = regexp.MustCompile(`([^,]+),\s*([^,]+)`)

// ParseLocation splits "city, area" strings and applies a simple country
// detection over the area part. Unparseable input becomes a display-only
// location.
func ParseLocation(text string) models.Location {
	location := models.Location{Display: text}
	if text == "" {
		return location
	}

	m := cityAreaPattern.FindStringSubmatch(text)
	if len(m) != 3 {
		return location
	}

	location.Display = strings.TrimSpace(m[1])
	location.Area = strings.TrimSpace(m[2])

	switch {
	case strings.Contains(location.Area, "Canada"), strings.Contains(location.Area, "CA"):
		location.Country = "Canada"
	case strings.Contains(location.Area, "United States"),
		strings.Contains(location.Area, "USA"),
		strings.Contains(location.Area, "US"):
		location.Country = "United States"
	case strings.Contains(location.Area, "United Kingdom"), strings.Contains(location.Area, "UK"):
		location.Country = "United Kingdom"
	}

	return location
}

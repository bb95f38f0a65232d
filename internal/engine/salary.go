package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxaizer/job-intel/internal/domain/models"
)

// MaxReasonableSalary is the validation ceiling for a single salary bound.
const MaxReasonableSalary = 1_000_000

var (
	salaryRangePattern  = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*-\s*\$?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)
	salarySinglePattern = regexp.MustCompile(`\$?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)
)

// ParseSalary recognizes "MIN - MAX" ranges and single currency-formatted
// values ("$50,000 - $80,000", "75,000"). On failure it reports ok=false and
// returns zero values; callers must not treat those zeros as parsed data.
func ParseSalary(text string) (min, max float64, ok bool) {
	if text == "" {
		return 0, 0, false
	}

	if m := salaryRangePattern.FindStringSubmatch(text); len(m) == 3 {
		minVal, errMin := strconv.ParseFloat(stripSeparators(m[1]), 64)
		maxVal, errMax := strconv.ParseFloat(stripSeparators(m[2]), 64)
		if errMin != nil || errMax != nil {
			return 0, 0, false
		}
		return minVal, maxVal, true
	}

	if m := salarySinglePattern.FindStringSubmatch(text); len(m) == 2 {
		value, err := strconv.ParseFloat(stripSeparators(m[1]), 64)
		if err != nil {
			return 0, 0, false
		}
		return value, value, true
	}

	return 0, 0, false
}

func stripSeparators(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// ValidateSalaryRange rejects negative bounds, ranges with min above a set
// max, and values beyond the reasonable ceiling.
func ValidateSalaryRange(min, max float64) bool {
	if min < 0 || max < 0 {
		return false
	}
	if max > 0 && min > max {
		return false
	}
	if min > MaxReasonableSalary || max > MaxReasonableSalary {
		return false
	}
	return true
}

// NormalizeSalaryRange fills a missing bound from the known one using fixed
// ratios (min = 0.7*max, max = 1.5*min) and swaps the bounds if inverted.
func NormalizeSalaryRange(min, max float64) (float64, float64) {
	if min == 0 && max > 0 {
		min = 0.7 * max
	}
	if max == 0 && min > 0 {
		max = 1.5 * min
	}
	if min > max {
		min, max = max, min
	}
	return min, max
}

// IsSalaryOutlier reports whether candidate deviates from the mean of the
// jobs' average salaries by more than three population standard deviations.
// Jobs without salary data are excluded from the statistics; a non-positive
// candidate or a degenerate sample is never flagged.
func IsSalaryOutlier(candidate float64, jobs []models.Job) bool {
	if candidate <= 0 {
		return false
	}

	var samples []float64
	for _, job := range jobs {
		if avg := job.AverageSalary(); avg > 0 {
			samples = append(samples, avg)
		}
	}
	if len(samples) < 2 {
		return false
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))

	var variance float64
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(samples))

	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return false
	}

	return math.Abs(candidate-mean) > 3*stddev
}

package engine

import (
	"testing"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_ParseSalary_RangeFormat(t *testing.T) {

	min, max, ok := ParseSalary("$50,000 - $80,000")

	assert.True(t, ok)
	assert.Equal(t, 50000.0, min)
	assert.Equal(t, 80000.0, max)
}

func Test_ParseSalary_SingleValue(t *testing.T) {

	min, max, ok := ParseSalary("$75,000")

	assert.True(t, ok)
	assert.Equal(t, 75000.0, min)
	assert.Equal(t, 75000.0, max)
}

func Test_ParseSalary_RejectsNonNumeric(t *testing.T) {

	_, _, ok := ParseSalary("not a number")
	assert.False(t, ok)

	_, _, ok = ParseSalary("")
	assert.False(t, ok)
}

func Test_ValidateSalaryRange(t *testing.T) {

	assert.True(t, ValidateSalaryRange(50000, 80000))
	assert.True(t, ValidateSalaryRange(50000, 0))
	assert.False(t, ValidateSalaryRange(-1, 80000))
	assert.False(t, ValidateSalaryRange(90000, 80000))
	assert.False(t, ValidateSalaryRange(0, 2000000))
}

func Test_NormalizeSalaryRange_FillsMissingBounds(t *testing.T) {

	min, max := NormalizeSalaryRange(0, 100000)
	assert.Equal(t, 70000.0, min)
	assert.Equal(t, 100000.0, max)

	min, max = NormalizeSalaryRange(50000, 0)
	assert.Equal(t, 50000.0, min)
	assert.Equal(t, 75000.0, max)
}

func Test_NormalizeSalaryRange_SwapsInvertedBounds(t *testing.T) {

	min, max := NormalizeSalaryRange(90000, 60000)

	assert.Equal(t, 60000.0, min)
	assert.Equal(t, 90000.0, max)
}

func Test_IsSalaryOutlier_FlagsExtremeValues(t *testing.T) {

	jobs := []models.Job{
		{SalaryMin: 50000, SalaryMax: 50000},
		{SalaryMin: 52000, SalaryMax: 52000},
		{SalaryMin: 48000, SalaryMax: 48000},
		{SalaryMin: 51000, SalaryMax: 51000},
		{SalaryMin: 49000, SalaryMax: 49000},
	}

	assert.True(t, IsSalaryOutlier(500000, jobs))
	assert.False(t, IsSalaryOutlier(51000, jobs))
}

func Test_IsSalaryOutlier_NeverFlagsNonPositiveCandidate(t *testing.T) {

	jobs := []models.Job{
		{SalaryMin: 50000, SalaryMax: 50000},
		{SalaryMin: 80000, SalaryMax: 80000},
	}

	assert.False(t, IsSalaryOutlier(0, jobs))
	assert.False(t, IsSalaryOutlier(-100, jobs))
}

func Test_IsSalaryOutlier_DegenerateSamplesAreNeutral(t *testing.T) {

	assert.False(t, IsSalaryOutlier(100000, nil))
	assert.False(t, IsSalaryOutlier(100000, []models.Job{{SalaryMin: 50000, SalaryMax: 50000}}))

	// jobs without salary data carry no statistics
	assert.False(t, IsSalaryOutlier(100000, []models.Job{{}, {}, {}}))
}

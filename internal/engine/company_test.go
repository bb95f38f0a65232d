package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NormalizeCompanyName_StripsSuffixes(t *testing.T) {

	assert.Equal(t, "Acme", NormalizeCompanyName("Acme Inc."))
	assert.Equal(t, "Globex", NormalizeCompanyName("Globex Corporation"))
	assert.Equal(t, "Initech", NormalizeCompanyName("Initech LLC"))
	assert.Equal(t, "", NormalizeCompanyName(""))
}

func Test_NormalizeCompanyName_TruncatesAtFirstSuffixOccurrence(t *testing.T) {

	// known limitation: the suffix substring is matched anywhere in the name
	assert.Equal(t, "", NormalizeCompanyName("Incline Corp"))
}

func Test_ParseLocation_SplitsCityAndArea(t *testing.T) {

	location := ParseLocation("Toronto, Canada")

	assert.Equal(t, "Toronto", location.Display)
	assert.Equal(t, "Canada", location.Area)
	assert.Equal(t, "Canada", location.Country)
}

func Test_ParseLocation_DetectsUnitedStates(t *testing.T) {

	location := ParseLocation("Austin, US")

	assert.Equal(t, "United States", location.Country)
}

func Test_ParseLocation_UnparseableInputIsDisplayOnly(t *testing.T) {

	location := ParseLocation("Remote")

	assert.Equal(t, "Remote", location.Display)
	assert.Empty(t, location.Area)
	assert.Empty(t, location.Country)
}

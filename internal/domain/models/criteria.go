package models

import "errors"

type MatchMode string

const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

type LocationMatchMode string

const (
	LocationExact   LocationMatchMode = "exact"
	LocationPartial LocationMatchMode = "partial"
)

type SortKey string

const (
	SortByRelevance SortKey = "relevance"
	SortBySalary    SortKey = "salary"
	SortByDate      SortKey = "date"
	SortByCompany   SortKey = "company"
	SortByLocation  SortKey = "location"
	SortByTitle     SortKey = "title"
)

func ToSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByRelevance, SortBySalary, SortByDate, SortByCompany, SortByLocation, SortByTitle:
		return SortKey(s), nil
	default:
		return "", errors.New("invalid sort key")
	}
}

// SearchCriteria drives the faceted search pipeline. Empty lists disable the
// corresponding filter stage; MaxResults of 0 means unlimited.
type SearchCriteria struct {
	Keywords         []string
	KeywordMode      MatchMode `validate:"omitempty,oneof=any all"`
	Technologies     []string
	TechnologyMode   MatchMode `validate:"omitempty,oneof=any all"`
	Locations        []string
	LocationMode     LocationMatchMode `validate:"omitempty,oneof=exact partial"`
	Companies        []string
	JobTypes         []string
	ExperienceLevels []string
	SalaryMin        float64 `validate:"gte=0"`
	SalaryMax        float64 `validate:"gte=0"`
	RemoteOnly       bool
	MaxAgeInDays     int `validate:"gte=0"`
	MaxResults       int `validate:"gte=0"`
	SortBy           SortKey
	SortDescending   bool
}

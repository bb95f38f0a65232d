package models

import "time"

type TechnologyTrend struct {
	Technology           string
	CurrentOccurrences   int
	PredictedOccurrences int
	GrowthRatePercent    float64
	Confidence           float64
}

type SalaryPrediction struct {
	Average          float64
	Median           float64
	Percentile25     float64
	Percentile75     float64
	Percentile90     float64
	PredictedAverage float64
	TrendPercent     float64
	Confidence       float64
}

type DemandOutlook string

const (
	OutlookStrong    DemandOutlook = "Strong Growth"
	OutlookModerate  DemandOutlook = "Moderate Growth"
	OutlookFlat      DemandOutlook = "Flat"
	OutlookDeclining DemandOutlook = "Declining"
)

type CategoryDemand struct {
	Category        string
	CurrentShare    float64
	PredictedChange float64
	Outlook         DemandOutlook
	Confidence      float64
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type EmergingOpportunity struct {
	Technologies       []string
	CurrentOccurrences int
	SalaryPremium      float64
	Risk               RiskLevel
	Confidence         float64
}

// MarketPredictions is a full forecast report, recomputed from scratch on
// every call. LowConfidence marks forecasts built from thin samples; they are
// still emitted, never suppressed.
type MarketPredictions struct {
	ForecastDays          int
	GeneratedAt           time.Time
	GrowthRatePercent     float64
	SampleSize            int
	Confidence            float64
	LowConfidence         bool
	TechnologyTrends      []TechnologyTrend
	Salary                SalaryPrediction
	CategoryDemand        []CategoryDemand
	EmergingOpportunities []EmergingOpportunity
}

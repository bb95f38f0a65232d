package engine

import (
	"math"
	"sort"
	"time"

	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/samber/lo"
)

const (
	minForecastSampleSize = 10
	fullConfidenceSample  = 50
	maxEmergingResults    = 10
)

// Forecaster produces market predictions from a historical snapshot. The
// interface isolates the extrapolation strategy so a real time-series model
// can replace the linear one without touching the rest of the engine.
type Forecaster interface {
	PredictMarketTrends(historicalJobs []models.Job, forecastDays int) models.MarketPredictions
}

// MarketForecaster is the linear/heuristic Forecaster implementation.
type MarketForecaster struct {
	classifier *Classifier
}

func NewMarketForecaster(classifier *Classifier) *MarketForecaster {
	return &MarketForecaster{classifier: classifier}
}

// PredictMarketTrends aggregates the snapshot into trend, salary, category
// demand and emerging-opportunity forecasts. Thin samples produce a
// low-confidence report, never an empty one.
func (f *MarketForecaster) PredictMarketTrends(historicalJobs []models.Job, forecastDays int) models.MarketPredictions {
	predictions := models.MarketPredictions{
		ForecastDays: forecastDays,
		GeneratedAt:  time.Now(),
		SampleSize:   len(historicalJobs),
	}
	if len(historicalJobs) == 0 {
		predictions.LowConfidence = true
		return predictions
	}

	buckets := dailyBuckets(historicalJobs)
	predictions.GrowthRatePercent = CalculateGrowthRate(buckets)
	predictions.TechnologyTrends = f.technologyTrends(historicalJobs, forecastDays, len(buckets))
	predictions.Salary = salaryPrediction(historicalJobs, forecastDays)
	predictions.CategoryDemand = f.categoryDemand(historicalJobs, predictions.TechnologyTrends)
	predictions.EmergingOpportunities = f.emergingOpportunities(historicalJobs)

	predictions.Confidence = clamp(float64(len(historicalJobs))/fullConfidenceSample, 0, 1)
	predictions.LowConfidence = len(historicalJobs) < minForecastSampleSize
	return predictions
}

// dailyBuckets counts postings per day using the 10-character date prefix
// of the creation timestamp. Postings without a date are skipped.
func dailyBuckets(jobs []models.Job) map[string]int {
	buckets := map[string]int{}
	for _, job := range jobs {
		if date := job.PostedDate(); len(date) == 10 {
			buckets[date]++
		}
	}
	return buckets
}

// CalculateGrowthRate is the percent change between the first and last daily
// bucket. Series shorter than two buckets, or a zero baseline, yield 0.
func CalculateGrowthRate(buckets map[string]int) float64 {
	if len(buckets) < 2 {
		return 0
	}

	dates := sortedKeys(buckets)
	first := buckets[dates[0]]
	last := buckets[dates[len(dates)-1]]
	if first == 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}

// technologyTrends extrapolates each technology's occurrence count linearly
// over the forecast horizon; confidence grows with the number of sampled
// days.
func (f *MarketForecaster) technologyTrends(jobs []models.Job, forecastDays, bucketCount int) []models.TechnologyTrend {
	counts := map[string]int{}
	for _, job := range jobs {
		for _, tech := range f.detected(job) {
			counts[tech]++
		}
	}

	confidence := clamp(float64(bucketCount)/14, 0, 1)
	trends := make([]models.TechnologyTrend, 0, len(counts))
	for _, tech := range sortedKeys(counts) {
		current := counts[tech]
		dailyRate := float64(current) / math.Max(float64(bucketCount), 1)
		predicted := current + int(math.Round(dailyRate*float64(forecastDays)))

		growth := 0.0
		if current > 0 {
			growth = float64(predicted-current) / float64(current) * 100
		}
		trends = append(trends, models.TechnologyTrend{
			Technology:           tech,
			CurrentOccurrences:   current,
			PredictedOccurrences: predicted,
			GrowthRatePercent:    growth,
			Confidence:           confidence,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].CurrentOccurrences != trends[j].CurrentOccurrences {
			return trends[i].CurrentOccurrences > trends[j].CurrentOccurrences
		}
		return trends[i].Technology < trends[j].Technology
	})
	return trends
}

// salaryPrediction computes the percentile spread over per-posting average
// salaries (nearest-rank indexing) and a trend between the older and newer
// halves of the date-ordered series.
func salaryPrediction(jobs []models.Job, forecastDays int) models.SalaryPrediction {
	byDate := make([]models.Job, len(jobs))
	copy(byDate, jobs)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].PostedDate() < byDate[j].PostedDate() })

	var ordered []float64
	for _, job := range byDate {
		if avg := job.AverageSalary(); avg > 0 {
			ordered = append(ordered, avg)
		}
	}
	if len(ordered) == 0 {
		return models.SalaryPrediction{}
	}

	average := lo.Sum(ordered) / float64(len(ordered))
	trend := halfOverHalfTrend(ordered)

	sorted := make([]float64, len(ordered))
	copy(sorted, ordered)
	sort.Float64s(sorted)

	return models.SalaryPrediction{
		Average:          average,
		Median:           percentile(sorted, 0.50),
		Percentile25:     percentile(sorted, 0.25),
		Percentile75:     percentile(sorted, 0.75),
		Percentile90:     percentile(sorted, 0.90),
		PredictedAverage: math.Max(0, average*(1+trend/100*float64(forecastDays)/30)),
		TrendPercent:     trend,
		Confidence:       clamp(float64(len(ordered))/fullConfidenceSample, 0, 1),
	}
}

// percentile uses nearest-rank indexing: index = floor(n*p), clamped to n-1.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(math.Floor(float64(len(sorted)) * p))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func halfOverHalfTrend(ordered []float64) float64 {
	if len(ordered) < 2 {
		return 0
	}

	mid := len(ordered) / 2
	olderAvg := lo.Sum(ordered[:mid]) / float64(mid)
	newerAvg := lo.Sum(ordered[mid:]) / float64(len(ordered)-mid)
	if olderAvg == 0 {
		return 0
	}
	return (newerAvg - olderAvg) / olderAvg * 100
}

// categoryDemand reports each category's current share and a predicted
// change derived from the growth of the technologies its postings carry.
func (f *MarketForecaster) categoryDemand(jobs []models.Job, trends []models.TechnologyTrend) []models.CategoryDemand {
	growthByTech := lo.SliceToMap(trends, func(t models.TechnologyTrend) (string, float64) {
		return t.Technology, t.GrowthRatePercent
	})

	counts := map[string]int{}
	techsByCategory := map[string][]string{}
	for _, job := range jobs {
		category := job.Category
		if category == "" {
			category = f.classifier.CategorizeJob(job)
		}
		counts[category]++
		techsByCategory[category] = append(techsByCategory[category], f.detected(job)...)
	}

	demand := make([]models.CategoryDemand, 0, len(counts))
	for _, category := range sortedKeys(counts) {
		predictedChange := averageGrowth(lo.Uniq(techsByCategory[category]), growthByTech)
		demand = append(demand, models.CategoryDemand{
			Category:        category,
			CurrentShare:    float64(counts[category]) / float64(len(jobs)),
			PredictedChange: predictedChange,
			Outlook:         outlookFor(predictedChange),
			Confidence:      clamp(float64(counts[category])/20, 0, 1),
		})
	}

	sort.Slice(demand, func(i, j int) bool {
		if demand[i].CurrentShare != demand[j].CurrentShare {
			return demand[i].CurrentShare > demand[j].CurrentShare
		}
		return demand[i].Category < demand[j].Category
	})
	return demand
}

func averageGrowth(technologies []string, growthByTech map[string]float64) float64 {
	if len(technologies) == 0 {
		return 0
	}

	var sum float64
	for _, tech := range technologies {
		sum += growthByTech[tech]
	}
	return sum / float64(len(technologies))
}

func outlookFor(predictedChange float64) models.DemandOutlook {
	switch {
	case predictedChange >= 15:
		return models.OutlookStrong
	case predictedChange >= 5:
		return models.OutlookModerate
	case predictedChange > -5:
		return models.OutlookFlat
	default:
		return models.OutlookDeclining
	}
}

// emergingOpportunities finds co-occurring pairs of emerging technologies
// that are still rare in the snapshot, ranked by the salary premium their
// postings command over the corpus average.
func (f *MarketForecaster) emergingOpportunities(jobs []models.Job) []models.EmergingOpportunity {
	corpusAvg := corpusAverageSalary(jobs)
	rareThreshold := int(math.Max(2, 0.05*float64(len(jobs))))

	type pairStats struct {
		count       int
		salarySum   float64
		salaryCount int
	}
	pairs := map[[2]string]*pairStats{}

	for _, job := range jobs {
		emerging := lo.Filter(f.detected(job), func(tech string, _ int) bool {
			return f.classifier.vocab.isEmerging(tech)
		})
		sort.Strings(emerging)

		for i := 0; i < len(emerging); i++ {
			for j := i + 1; j < len(emerging); j++ {
				key := [2]string{emerging[i], emerging[j]}
				stats, ok := pairs[key]
				if !ok {
					stats = &pairStats{}
					pairs[key] = stats
				}
				stats.count++
				if avg := job.AverageSalary(); avg > 0 {
					stats.salarySum += avg
					stats.salaryCount++
				}
			}
		}
	}

	var opportunities []models.EmergingOpportunity
	for key, stats := range pairs {
		if stats.count > rareThreshold {
			continue
		}

		premium := 0.0
		if stats.salaryCount > 0 && corpusAvg > 0 {
			premium = stats.salarySum/float64(stats.salaryCount) - corpusAvg
		}
		opportunities = append(opportunities, models.EmergingOpportunity{
			Technologies:       []string{key[0], key[1]},
			CurrentOccurrences: stats.count,
			SalaryPremium:      premium,
			Risk:               riskFor(stats.count),
			Confidence:         clamp(float64(stats.count)/float64(rareThreshold), 0, 1),
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].SalaryPremium != opportunities[j].SalaryPremium {
			return opportunities[i].SalaryPremium > opportunities[j].SalaryPremium
		}
		return opportunities[i].Technologies[0] < opportunities[j].Technologies[0]
	})
	if len(opportunities) > maxEmergingResults {
		opportunities = opportunities[:maxEmergingResults]
	}
	return opportunities
}

func riskFor(occurrences int) models.RiskLevel {
	switch {
	case occurrences <= 1:
		return models.RiskHigh
	case occurrences <= 3:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func corpusAverageSalary(jobs []models.Job) float64 {
	var sum float64
	count := 0
	for _, job := range jobs {
		if avg := job.AverageSalary(); avg > 0 {
			sum += avg
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func (f *MarketForecaster) detected(job models.Job) []string {
	if len(job.Technologies) > 0 {
		return job.Technologies
	}
	return f.classifier.ExtractTechnologies(job.Description)
}

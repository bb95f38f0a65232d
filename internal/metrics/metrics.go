package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_snapshot_analysis_duration_seconds",
			Help:    "Duration of each snapshot analysis in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
	AnalysisStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "engine_analysis_step_duration_seconds",
			Help:       "Duration of each step in the snapshot analysis process.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	ClassifiedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_jobs_classified_total",
			Help: "Total number of postings classified.",
		},
	)
	RaisedAlertsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_alerts_raised_total",
			Help: "Total number of raised alerts.",
		},
		[]string{"type"},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisStepDuration)
	prometheus.MustRegister(ClassifiedJobsCounter)
	prometheus.MustRegister(RaisedAlertsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}

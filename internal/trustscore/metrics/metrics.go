package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the trust score module.
type Metrics struct {
	// Calculation outcomes by resulting status
	CalculationOutcome *prometheus.CounterVec

	// Distribution of final scores
	Score prometheus.Histogram

	// Flags raised per calculation
	FlagCount prometheus.Histogram

	// Calculation latency
	CalculateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all trust score metrics registered.
func New() *Metrics {
	return &Metrics{
		CalculationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clearhire_trustscore_calculations_total",
			Help: "Total trust score calculations by resulting status",
		}, []string{"status"}),

		Score: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clearhire_trustscore_score",
			Help:    "Distribution of calculated trust scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 95, 100},
		}),

		FlagCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clearhire_trustscore_flags",
			Help:    "Number of flags raised per calculation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),

		CalculateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clearhire_trustscore_calculate_duration_seconds",
			Help:    "Duration of trust score calculations",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}),
	}
}

// RecordCalculation records the outcome of one calculation.
func (m *Metrics) RecordCalculation(status string, score float64, flagCount int) {
	if m != nil {
		m.CalculationOutcome.WithLabelValues(status).Inc()
		m.Score.Observe(score)
		m.FlagCount.Observe(float64(flagCount))
	}
}

// ObserveCalculateLatency records the duration of one calculation.
func (m *Metrics) ObserveCalculateLatency(d time.Duration) {
	if m != nil {
		m.CalculateLatency.Observe(d.Seconds())
	}
}

// Package metrics holds the Prometheus collectors exported by paretod.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	runs         *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	frontSize    *prometheus.HistogramVec
	datasetItems prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pareto_runs_total",
				Help: "Front extractions by mode and outcome.",
			},
			[]string{"mode", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pareto_run_duration_seconds",
				Help:    "Time spent extracting a front.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"mode"},
		),
		frontSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pareto_front_size",
				Help:    "Number of survivors per extraction.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"mode"},
		),
		datasetItems: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pareto_dataset_items",
				Help:    "Number of items per filtered dataset.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 9),
			},
		),
	}
}

// ObserveRun records a successful extraction.
func (m *Metrics) ObserveRun(mode string, items, front int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(mode, "completed").Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.frontSize.WithLabelValues(mode).Observe(float64(front))
	m.datasetItems.Observe(float64(items))
}

// ObserveFailure records an extraction that returned an error.
func (m *Metrics) ObserveFailure(mode string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(mode, "failed").Inc()
}

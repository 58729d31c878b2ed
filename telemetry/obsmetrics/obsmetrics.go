// Package obsmetrics instruments the miner and the evaluation engine with
// Prometheus counters and histograms, exposed over HTTP when the CLI is
// started with --metrics-addr.
package obsmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	scenariosMined = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "robometrics_scenarios_mined_total",
		Help: "Scenarios extracted by the miner, by rule id.",
	}, []string{"rule_id"})

	miningWarnings = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "robometrics_mining_warnings_total",
		Help: "Non-fatal mining warnings emitted, by rule id.",
	}, []string{"rule_id"})

	metricEvaluations = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "robometrics_metric_evaluations_total",
		Help: "Metric evaluations performed, by metric name and validity.",
	}, []string{"metric", "valid"})

	metricEvaluationSeconds = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "robometrics_metric_evaluation_seconds",
		Help:    "Wall-clock time spent evaluating a single metric.",
		Buckets: prometheus.DefBuckets,
	}, []string{"metric"})
)

// Now returns the current instant for use with Since, so callers can time
// an operation without importing time directly.
func Now() time.Time { return time.Now() }

// Since returns the elapsed duration from start.
func Since(start time.Time) time.Duration { return time.Since(start) }

// ObserveScenariosMined increments the mined-scenario counter for a rule.
func ObserveScenariosMined(ruleID string, count int) {
	scenariosMined.WithLabelValues(ruleID).Add(float64(count))
}

// ObserveMiningWarning increments the mining-warning counter for a rule.
func ObserveMiningWarning(ruleID string) {
	miningWarnings.WithLabelValues(ruleID).Inc()
}

// ObserveMetricEvaluation records one metric evaluation's outcome and
// duration.
func ObserveMetricEvaluation(metric string, valid bool, d time.Duration) {
	validLabel := "false"
	if valid {
		validLabel = "true"
	}
	metricEvaluations.WithLabelValues(metric, validLabel).Inc()
	metricEvaluationSeconds.WithLabelValues(metric).Observe(d.Seconds())
}

// Handler returns the HTTP handler that exposes the registry in the
// Prometheus text exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on addr. It blocks until
// the server stops; callers run it in its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}

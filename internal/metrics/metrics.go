// Package metrics holds the Prometheus collectors for the assessment pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
)

const namespace = "skinrisk"

// Metrics owns a registry so tests and multiple servers do not collide on
// the global one.
type Metrics struct {
	registry *prometheus.Registry

	assessments       *prometheus.CounterVec
	failures          *prometheus.CounterVec
	missingByField    *prometheus.CounterVec
	classifierLatency prometheus.Histogram
	batchRows         prometheus.Counter
}

// New registers every collector, plus the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed risk assessments by tier.",
		}, []string{"tier"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_failures_total",
			Help:      "Failed risk assessments by error code.",
		}, []string{"code"}),
		missingByField: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleaned_missing_total",
			Help:      "Features that were missing after cleaning, by field.",
		}, []string{"field"}),
		classifierLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_duration_seconds",
			Help:      "Time spent in the classifier per prediction.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		batchRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_rows_total",
			Help:      "Rows processed by batch assessment.",
		}),
	}

	m.registry.MustRegister(
		m.assessments,
		m.failures,
		m.missingByField,
		m.classifierLatency,
		m.batchRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, t := range risk.Tiers() {
		m.assessments.WithLabelValues(t.String())
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAssessment counts a finished assessment
func (m *Metrics) ObserveAssessment(tier risk.Tier) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(tier.String()).Inc()
}

// ObserveFailure counts a failed assessment by error code
func (m *Metrics) ObserveFailure(code string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(code).Inc()
}

// ObserveCleaned counts the missing features of a cleaned vector
func (m *Metrics) ObserveCleaned(fv survey.FeatureVector) {
	if m == nil {
		return
	}
	for i, v := range fv.Values {
		if v.IsMissing() {
			m.missingByField.WithLabelValues(string(fv.Names[i])).Inc()
		}
	}
}

// ObserveClassifier records one classifier call
func (m *Metrics) ObserveClassifier(d time.Duration) {
	if m == nil {
		return
	}
	m.classifierLatency.Observe(d.Seconds())
}

// ObserveBatch counts rows handled by a batch run
func (m *Metrics) ObserveBatch(rows int) {
	if m == nil {
		return
	}
	m.batchRows.Add(float64(rows))
}

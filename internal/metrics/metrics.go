// Package metrics exposes Prometheus instrumentation for classification,
// validation and document generation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nyaysetu"

// Metrics owns a private registry and the service collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	confidence      prometheus.Histogram
	fallbacks       *prometheus.CounterVec
	validations     *prometheus.CounterVec
	documents       *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classification results by outcome, document type and source.",
		}, []string{"outcome", "document_type", "source"}),
		confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_confidence",
			Help:      "Distribution of reported classification confidence.",
			Buckets:   []float64{0, 50, 65, 70, 75, 85, 95, 98, 100},
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_fallbacks_total",
			Help:      "External classification service calls by result.",
		}, []string{"result"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validation runs by document type and result.",
		}, []string{"document_type", "result"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_generated_total",
			Help:      "Generated documents by type.",
		}, []string{"document_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.classifications,
		m.confidence,
		m.fallbacks,
		m.validations,
		m.documents,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveClassification records one classification result.
func (m *Metrics) ObserveClassification(outcome, documentType, source string, confidence int) {
	if m == nil {
		return
	}
	if documentType == "" {
		documentType = "none"
	}
	m.classifications.WithLabelValues(outcome, documentType, source).Inc()
	m.confidence.Observe(float64(confidence))
}

// ObserveFallback records the result of one external service call.
func (m *Metrics) ObserveFallback(result string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(result).Inc()
}

// ObserveValidation records one validation run.
func (m *Metrics) ObserveValidation(documentType string, passed bool) {
	if m == nil {
		return
	}
	result := "failed"
	if passed {
		result = "passed"
	}
	m.validations.WithLabelValues(documentType, result).Inc()
}

// ObserveDocument records one generated document.
func (m *Metrics) ObserveDocument(documentType string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(documentType).Inc()
}

// Package metrics exposes the Prometheus collectors of the service.
//
// Collectors live on a private registry so tests can build as many
// Metrics values as they need. Every method is safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linkvault"

// Fallback stages recorded by the extraction pipeline.
const (
	StageTitle    = "title"
	StageSummary  = "summary"
	StageCategory = "category"
	StageTags     = "tags"
	StageSource   = "source"
)

type Metrics struct {
	registry *prometheus.Registry

	extractions *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	classified  *prometheus.CounterVec
	chats       *prometheus.CounterVec
	aiLatency   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Extraction pipeline runs by outcome",
		}, []string{"outcome"}), // outcome: success, error
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Default values taken by the extraction pipeline, by stage",
		}, []string{"stage"}),
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Category decisions by policy and category",
		}, []string{"policy", "category"}),
		chats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Grounded chat turns by outcome",
		}, []string{"outcome"}),
		aiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Latency of calls to the AI service",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"operation", "status"}),
	}

	reg.MustRegister(m.extractions, m.fallbacks, m.classified, m.chats, m.aiLatency)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Extraction(err error) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) Fallback(stage string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(stage).Inc()
}

func (m *Metrics) Classified(policy, category string) {
	if m == nil {
		return
	}
	m.classified.WithLabelValues(policy, category).Inc()
}

func (m *Metrics) Chat(err error) {
	if m == nil {
		return
	}
	m.chats.WithLabelValues(outcome(err)).Inc()
}

// ObserveAI records one AI call that started at start.
func (m *Metrics) ObserveAI(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.aiLatency.WithLabelValues(operation, outcome(err)).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

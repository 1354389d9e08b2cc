// Package metrics exposes engine and HTTP counters in Prometheus format
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pantrychef"

// Metrics records suggestion calls, pantry writes and HTTP traffic on its
// own registry.
type Metrics struct {
	registry *prometheus.Registry

	suggestionCalls    *prometheus.CounterVec
	suggestionDuration *prometheus.HistogramVec
	pantryUpdates      *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates a Metrics instance with Go runtime and process collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		suggestionCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestion_calls_total",
				Help:      "Suggestion service calls by call type and outcome",
			},
			[]string{"call", "outcome"},
		),
		suggestionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suggestion_duration_seconds",
				Help:      "Time spent obtaining a suggestion, fallbacks included",
				Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"call"},
		),
		pantryUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pantry_updates_total",
				Help:      "Pantry write attempts by outcome",
			},
			[]string{"outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// SuggestionCall records one suggestion round trip
func (m *Metrics) SuggestionCall(call, outcome string, elapsed time.Duration) {
	m.suggestionCalls.WithLabelValues(call, outcome).Inc()
	m.suggestionDuration.WithLabelValues(call).Observe(elapsed.Seconds())
}

// PantryUpdate records one pantry write
func (m *Metrics) PantryUpdate(outcome string) {
	m.pantryUpdates.WithLabelValues(outcome).Inc()
}

// HTTPRequest records one served request. route is the matched pattern,
// not the raw path.
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Package metrics records client-side request metrics for the task API.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StatusError is the status label for requests that got no response.
const StatusError = "error"

// Metrics holds the request collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_requests_total",
				Help: "Total number of requests sent to the task API",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tasklist_request_duration_seconds",
				Help:    "Duration of requests to the task API in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.3, 1, 3},
			},
			[]string{"method", "route"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tasklist_in_flight_requests",
				Help: "Current number of in-flight requests to the task API",
			},
		),
	}
}

// Start marks a request as in flight and returns a func that records it.
// Pass status 0 to the returned func when the request failed without a response.
func (m *Metrics) Start(method, path string) func(status int) {
	m.inFlight.Inc()
	start := time.Now()
	route := NormalizeRoute(path)

	return func(status int) {
		m.inFlight.Dec()
		label := StatusError
		if status > 0 {
			label = strconv.Itoa(status)
		}
		m.requestsTotal.WithLabelValues(method, route, label).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the current metrics in text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// NormalizeRoute replaces the item segment after "tasks" with {id}
// so that per-task paths share one label value.
func NormalizeRoute(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if parts[i-1] == "tasks" && parts[i] != "" {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// Package metrics provides Prometheus metrics for the animal console.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "animal_console"

var (
	// Global metrics, nil until Init runs.
	requestsTotal       atomic.Pointer[prometheus.CounterVec]
	requestDuration     atomic.Pointer[prometheus.HistogramVec]
	gateRejectionsTotal atomic.Pointer[prometheus.CounterVec]
	upstreamCallsTotal  atomic.Pointer[prometheus.CounterVec]
	upstreamDuration    atomic.Pointer[prometheus.HistogramVec]
)

// Init registers all metrics with reg. Call once at startup.
func Init(reg prometheus.Registerer, version string) error {
	requestsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the console",
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestsTotalVec); err != nil {
		return fmt.Errorf("failed to register requestsTotal: %w", err)
	}

	requestDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestDurationVec); err != nil {
		return fmt.Errorf("failed to register requestDuration: %w", err)
	}

	gateRejectionsVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "gate_rejections_total",
			Help:      "Protected view activations sent back to the entry view",
		},
		[]string{"reason"},
	)
	if err := reg.Register(gateRejectionsVec); err != nil {
		return fmt.Errorf("failed to register gateRejections: %w", err)
	}

	upstreamCallsVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Calls to the inventory backend by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	if err := reg.Register(upstreamCallsVec); err != nil {
		return fmt.Errorf("failed to register upstreamCalls: %w", err)
	}

	upstreamDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Inventory backend call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	if err := reg.Register(upstreamDurationVec); err != nil {
		return fmt.Errorf("failed to register upstreamDuration: %w", err)
	}

	infoGaugeVec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "info",
			Help:      "Console version and build information",
		},
		[]string{"version"},
	)
	if err := reg.Register(infoGaugeVec); err != nil {
		return fmt.Errorf("failed to register infoGauge: %w", err)
	}
	infoGaugeVec.WithLabelValues(version).Set(1)

	requestsTotal.Store(requestsTotalVec)
	requestDuration.Store(requestDurationVec)
	gateRejectionsTotal.Store(gateRejectionsVec)
	upstreamCallsTotal.Store(upstreamCallsVec)
	upstreamDuration.Store(upstreamDurationVec)

	return nil
}

// RecordRequest increments the requests counter.
// path must be a route pattern (e.g. "/home/animals/{id}"), never a raw URL path.
func RecordRequest(method, path, status string) {
	if counter := requestsTotal.Load(); counter != nil {
		counter.WithLabelValues(method, path, status).Inc()
	}
}

// RecordRequestDuration records the latency for a request in seconds.
func RecordRequestDuration(method, path, status string, durationSeconds float64) {
	if histogram := requestDuration.Load(); histogram != nil {
		histogram.WithLabelValues(method, path, status).Observe(durationSeconds)
	}
}

// RecordGateRejection counts a protected activation turned away by the session gate.
// Reasons: "missing", "expired", "malformed", "store_error".
func RecordGateRejection(reason string) {
	if counter := gateRejectionsTotal.Load(); counter != nil {
		counter.WithLabelValues(reason).Inc()
	}
}

// RecordUpstreamCall counts one backend call.
// Outcomes: "success", "http_error", "transport_error".
func RecordUpstreamCall(operation, outcome string, durationSeconds float64) {
	if counter := upstreamCallsTotal.Load(); counter != nil {
		counter.WithLabelValues(operation, outcome).Inc()
	}
	if histogram := upstreamDuration.Load(); histogram != nil {
		histogram.WithLabelValues(operation).Observe(durationSeconds)
	}
}

// HandlerFor returns the Prometheus handler for a specific registry.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// GetMetricsText returns the Prometheus text-format output from a registry.
func GetMetricsText(reg prometheus.Gatherer) (string, error) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	HandlerFor(reg).ServeHTTP(w, req)

	body, err := io.ReadAll(w.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read metrics output: %w", err)
	}

	return string(body), nil
}

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets optimized for API response times ranging from
	// milliseconds to multi-second collaborator calls (Resend, Strapi, Netlify)
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Outbound Collaborator Metrics (Resend, Strapi, build hook)
	OutboundCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outbound_call_duration_seconds",
			Help:    "Outbound collaborator call duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"service", "operation", "status"},
	)

	OutboundCallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_call_total",
			Help: "Total number of outbound collaborator calls",
		},
		[]string{"service", "operation", "status"},
	)

	// Business Metrics
	ContactFormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "koordynuj_contact_form_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"status"},
	)

	RebuildDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "koordynuj_rebuild_decisions_total",
			Help: "Total number of webhook rebuild decisions",
		},
		[]string{"outcome"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// ObserveOutboundCall records duration and count for an outbound collaborator call
func ObserveOutboundCall(service, operation, status string, start time.Time) {
	duration := MeasureDuration(start)
	OutboundCallDuration.WithLabelValues(service, operation, status).Observe(duration)
	OutboundCallTotal.WithLabelValues(service, operation, status).Inc()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

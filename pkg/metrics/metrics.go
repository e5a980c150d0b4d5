package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Create a custom registry
var registry = prometheus.NewRegistry()

// Create a registerer that uses our registry
var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25, // Fast responses (5-25ms)
		50, 100, 250, // Normal responses (50-250ms)
		500, 1000, 2500, // Slower responses (500ms-2.5s)
		5000, 10000, 30000, // Very slow/timeout (5s-30s)
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_api_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telemetry_api_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"endpoint"},
	)

	CacheHits = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_api_cache_hits_total",
			Help: "Lookaside cache hits by endpoint",
		},
		[]string{"endpoint"},
	)

	CacheMisses = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_api_cache_misses_total",
			Help: "Lookaside cache misses by endpoint",
		},
		[]string{"endpoint"},
	)
)

// Initialize registers process and runtime collectors on the registry.
func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// GetStatusClass returns the status class (e.g., "2xx") for a code.
func GetStatusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}

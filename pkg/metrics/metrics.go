// Package metrics provides Prometheus instrumentation for the DMOrder
// service: standard HTTP metrics plus the storefront's domain counters.
//
// Wire it once in the route registration:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dmorder",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dmorder",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dmorder",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// OrdersPlaced counts successfully committed order placements.
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dmorder",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders committed by the placement transaction.",
	})

	// OrdersOutOfStock counts placements rejected inside the transaction
	// because the selected size had no stock left.
	OrdersOutOfStock = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dmorder",
		Subsystem: "orders",
		Name:      "out_of_stock_total",
		Help:      "Placements rejected for insufficient stock.",
	})

	// ProofUploads counts payment-proof uploads by outcome.
	ProofUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dmorder",
			Subsystem: "uploads",
			Name:      "proof_total",
			Help:      "Payment screenshot uploads by outcome.",
		},
		[]string{"outcome"}, // "ok" | "failed"
	)

	// LiveSubscriptions gauges currently open dashboard subscriptions.
	LiveSubscriptions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dmorder",
		Subsystem: "dashboard",
		Name:      "live_subscriptions",
		Help:      "Open dashboard live-view subscriptions.",
	})
)

// DefaultRegistry is the Prometheus registry used by the service.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersPlaced,
		OrdersOutOfStock,
		ProofUploads,
		LiveSubscriptions,
	)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware records Prometheus metrics for every request: duration
// histogram, total counter, in-flight gauge.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// Package metrics exposes Prometheus metrics for the pricing API: inbound
// HTTP request latency/counts plus implied-volatility solve outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve outcome labels recorded by ObserveSolve.
const (
	OutcomeConverged     = "converged"
	OutcomeVegaUnderflow = "vega_underflow"
	OutcomeMaxIterations = "max_iterations"
)

// Collector holds the registry and instruments for the pricing service.
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveTotal      *prometheus.CounterVec
}

// NewCollector constructs a collector backed by a private registry, so
// tests can build as many as they like without duplicate-registration
// panics.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "optionpricer",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optionpricer",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optionpricer",
		Subsystem: "solver",
		Name:      "implied_vol_solves_total",
		Help:      "Implied-volatility solve attempts by outcome.",
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{requestDuration, requestTotal, solveTotal} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveTotal:      solveTotal,
	}, nil
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveSolve records one implied-volatility solve outcome.
func (c *Collector) ObserveSolve(outcome string) {
	c.solveTotal.WithLabelValues(outcome).Inc()
}

// InstrumentHandler wraps next to record request count and latency.
func (c *Collector) InstrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.status)
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}

// responseWriter captures the status code written by a handler.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics holds the collectors for API request instrumentation.
type HTTPMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewHTTPMetrics creates Prometheus-backed HTTP metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewHTTPMetrics() *HTTPMetrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &HTTPMetrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skydrive_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "skydrive_http_request_duration_milliseconds",
				Help: "Duration of HTTP requests in milliseconds",
				Buckets: []float64{
					1,    // 1ms - cached reads
					5,    // 5ms
					10,   // 10ms - simple store queries
					50,   // 50ms
					100,  // 100ms - listings
					500,  // 500ms
					1000, // 1s - uploads
					5000, // 5s - large uploads
				},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "skydrive_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// Middleware instruments requests flowing through a chi router. When m is
// nil (metrics disabled) the original handler is returned untouched.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// The route pattern, not the raw path, keeps label cardinality
		// bounded (one series per route, not per entity id).
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(elapsed)
	})
}

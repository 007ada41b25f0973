package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPMetrics records request counts and latency labelled by the matched route pattern,
// so path parameters do not explode label cardinality.
func (m *Middlewares) HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		m.Metrics.InFlightGauge.Inc()
		defer m.Metrics.InFlightGauge.Dec()

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(rec.statusCode)
		m.Metrics.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		m.Metrics.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

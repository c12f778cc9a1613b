package middleware

import (
	"net/http"
	"time"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/gorilla/mux"
)

// Metrics observes per-route latency. Request and error counting happens in
// the components so each event is counted exactly once.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}
			m.RequestLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
		})
	}
}

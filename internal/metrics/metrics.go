package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the process-wide counters. It is constructed once at startup
// and passed into components instead of living as package globals.
type Metrics struct {
	registry *prometheus.Registry

	// RequestCount counts every inbound API request
	RequestCount prometheus.Counter
	// ErrorCount counts every fault, exactly once per occurrence
	ErrorCount prometheus.Counter
	// CampaignCreated counts successful campaign creations
	CampaignCreated prometheus.Counter
	// FeedbackRatingCount tracks how many stored feedbacks carry each rating
	FeedbackRatingCount *prometheus.GaugeVec
	// RequestLatency observes handler latency per route
	RequestLatency *prometheus.HistogramVec
}

// New creates a metrics set on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "request_count",
			Help: "Total number of requests",
		}),
		ErrorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "error_count",
			Help: "Number of errors occurred",
		}),
		CampaignCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_created",
			Help: "Number of campaigns created",
		}),
		FeedbackRatingCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "feedback_rating_count",
			Help: "Count of feedbacks by rating",
		}, []string{"rating"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "Latency of HTTP handlers",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}

	m.registry.MustRegister(
		m.RequestCount,
		m.ErrorCount,
		m.CampaignCreated,
		m.FeedbackRatingCount,
		m.RequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// SetRatingCounts replaces the feedback_rating_count gauge with fresh values
func (m *Metrics) SetRatingCounts(counts map[string]int64) {
	m.FeedbackRatingCount.Reset()
	for rating, count := range counts {
		m.FeedbackRatingCount.WithLabelValues(rating).Set(float64(count))
	}
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

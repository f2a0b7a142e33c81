// Package metrics holds the Prometheus collectors of the transcript service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "transcript"

// Cache lookup outcomes.
const (
	CacheHit        = "hit"
	CacheTranslated = "translated"
	CacheMiss       = "miss"
)

type Metrics struct {
	CacheLookups    *prometheus.CounterVec
	RateLimit       *prometheus.CounterVec
	Debits          *prometheus.CounterVec
	ModelCalls      *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	TicketsCreated  prometheus.Counter
	TicketsConsumed *prometheus.CounterVec
}

// New registers the collectors on reg. Passing nil creates unregistered
// collectors, which is what most tests want.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Transcript cache lookups by outcome.",
		}, []string{"outcome"}),
		RateLimit: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_decisions_total",
			Help:      "Rate limiter decisions on image submissions.",
		}, []string{"decision"}),
		Debits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debits_total",
			Help:      "Credit debits by outcome.",
		}, []string{"outcome"}),
		ModelCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Transcription and translation calls by route and outcome.",
		}, []string{"route", "outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route"}),
		TicketsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets issued for pages without a cached transcript.",
		}),
		TicketsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_consumed_total",
			Help:      "Image submissions by ticket outcome.",
		}, []string{"outcome"}),
	}
}

// Outcome labels a call result as "ok" or "error".
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

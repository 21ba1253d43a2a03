package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	SessionsOpened     prometheus.Counter
	SessionsClosed     prometheus.Counter
	EmailVerifications prometheus.Counter

	// Guard decisions labeled by outcome: render, pending,
	// redirect_login, redirect_role, redirect_verify.
	GuardDecisions *prometheus.CounterVec

	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	HomeCacheHits   prometheus.Counter
	HomeCacheMisses prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates and registers all metrics on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "wisata_sessions_opened_total",
			Help: "Total number of sessions opened via login",
		}),
		SessionsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "wisata_sessions_closed_total",
			Help: "Total number of sessions closed via logout",
		}),
		EmailVerifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "wisata_email_verifications_total",
			Help: "Total number of successful email verifications",
		}),
		GuardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wisata_guard_decisions_total",
			Help: "Route guard decisions labeled by outcome",
		}, []string{"outcome"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wisata_upstream_requests_total",
			Help: "Upstream API requests labeled by operation and outcome",
		}, []string{"operation", "outcome"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wisata_upstream_latency_seconds",
			Help:    "Latency of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		HomeCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "wisata_home_cache_hits_total",
			Help: "Home page aggregate served from cache",
		}),
		HomeCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "wisata_home_cache_misses_total",
			Help: "Home page aggregate fetched from upstream",
		}),
	}
}

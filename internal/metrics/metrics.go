package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay metrics - Track GraphQL passthrough volume
var (
	RelayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_relay_requests_total",
			Help: "Total number of relayed GraphQL requests by upstream status class",
		},
		[]string{"status"},
	)

	RelayFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_relay_failures_total",
			Help: "Total number of requests the relay answered itself, by reason",
		},
		[]string{"reason"},
	)

	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxy_csrf_tokens_issued_total",
		Help: "Total number of anti-forgery tokens generated (one per relayed request)",
	})
)

// Performance metrics - Track upstream latency
var (
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "proxy_upstream_duration_seconds",
		Help:    "Time taken by the upstream GraphQL backend to answer",
		Buckets: prometheus.DefBuckets,
	})
)

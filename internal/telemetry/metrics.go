package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for upstream calls.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
	OutcomeCircuitOpen = "circuit_open"
)

var (
	// UpstreamRequests counts provider calls by provider and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather",
		Name:      "upstream_requests_total",
		Help:      "Upstream provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	// UpstreamDuration observes provider call latency in seconds.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weather",
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream provider call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

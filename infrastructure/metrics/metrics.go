package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream endpoint labels
const (
	EndpointSearch   = "search"
	EndpointStats    = "statistics"
	EndpointDetails  = "details"
	EndpointComments = "comments"
)

// IRecorder is what the client and use cases report into
type IRecorder interface {
	ObserveUpstream(endpoint string, err error, elapsed time.Duration)
	StaleResponse()
	StatsDegraded()
	SessionOperation(op string, err error)
}

// Collector is the prometheus backed IRecorder
type Collector struct {
	gatherer        prometheus.Gatherer
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	staleResponses  prometheus.Counter
	statsDegraded   prometheus.Counter
	sessionOps      *prometheus.CounterVec
}

// NewCollector registers the dashboard metrics on a private registry
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.NewRegistry())
}

// NewCollectorWithRegistry registers the dashboard metrics on reg
func NewCollectorWithRegistry(reg *prometheus.Registry) *Collector {
	c := &Collector{
		gatherer: reg,
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yt_dashboard_upstream_requests_total",
			Help: "YouTube Data API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yt_dashboard_upstream_latency_seconds",
			Help:    "YouTube Data API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		staleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yt_dashboard_stale_responses_total",
			Help: "Page results discarded because a newer request superseded them",
		}),
		statsDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yt_dashboard_stats_degraded_total",
			Help: "Search pages served with empty statistics",
		}),
		sessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yt_dashboard_session_operations_total",
			Help: "Search session operations by type and outcome",
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(
		c.upstreamCalls,
		c.upstreamLatency,
		c.staleResponses,
		c.statsDegraded,
		c.sessionOps,
	)
	return c
}

func (c *Collector) ObserveUpstream(endpoint string, err error, elapsed time.Duration) {
	c.upstreamCalls.WithLabelValues(endpoint, outcome(err)).Inc()
	c.upstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (c *Collector) StaleResponse() {
	c.staleResponses.Inc()
}

func (c *Collector) StatsDegraded() {
	c.statsDegraded.Inc()
}

func (c *Collector) SessionOperation(op string, err error) {
	c.sessionOps.WithLabelValues(op, outcome(err)).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// Nop discards everything. Used when metrics are disabled and in tests.
type Nop struct{}

func (Nop) ObserveUpstream(string, error, time.Duration) {}
func (Nop) StaleResponse()                               {}
func (Nop) StatsDegraded()                               {}
func (Nop) SessionOperation(string, error)               {}

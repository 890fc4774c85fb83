// Package metrics exposes Prometheus counters for the response pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mindguard"

// Collector wraps the service's Prometheus metrics. A nil *Collector is
// valid and records nothing, so components can take one optionally.
type Collector struct {
	registry *prometheus.Registry

	RiskClassifications *prometheus.CounterVec
	Responses           *prometheus.CounterVec
	RemoteFallbacks     *prometheus.CounterVec
	RemoteLatency       prometheus.Histogram
	BreakerState        prometheus.Gauge
	CrisisAlerts        *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	ActiveConnections   prometheus.Gauge
}

// NewCollector creates a Collector with its own registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		RiskClassifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_classifications_total",
			Help:      "Messages classified, by risk tier",
		}, []string{"tier"}),
		Responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Responses produced, by router stage and intervention",
		}, []string{"source", "intervention"}),
		RemoteFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fallbacks_total",
			Help:      "Remote generation failures replaced by the fallback, by reason",
		}, []string{"reason"}),
		RemoteLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of remote generation calls",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remote_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		}),
		CrisisAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crisis_alerts_total",
			Help:      "Crisis alerts raised, by risk tier",
		}, []string{"tier"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_active_connections",
			Help:      "Open websocket chat connections",
		}),
	}

	reg.MustRegister(
		c.RiskClassifications,
		c.Responses,
		c.RemoteFallbacks,
		c.RemoteLatency,
		c.BreakerState,
		c.CrisisAlerts,
		c.HTTPRequests,
		c.HTTPDuration,
		c.ActiveConnections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler returns an HTTP handler that serves Prometheus metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordRisk counts one classification
func (c *Collector) RecordRisk(tier string) {
	if c == nil {
		return
	}
	c.RiskClassifications.WithLabelValues(tier).Inc()
}

// RecordResponse counts one response
func (c *Collector) RecordResponse(source, intervention string) {
	if c == nil {
		return
	}
	c.Responses.WithLabelValues(source, intervention).Inc()
}

// RecordFallback counts one remote failure
func (c *Collector) RecordFallback(reason string) {
	if c == nil {
		return
	}
	c.RemoteFallbacks.WithLabelValues(reason).Inc()
}

// ObserveRemote records the latency of one remote call
func (c *Collector) ObserveRemote(d time.Duration) {
	if c == nil {
		return
	}
	c.RemoteLatency.Observe(d.Seconds())
}

// SetBreakerState records the breaker state as a number
func (c *Collector) SetBreakerState(state int) {
	if c == nil {
		return
	}
	c.BreakerState.Set(float64(state))
}

// RecordCrisisAlert counts one crisis alert
func (c *Collector) RecordCrisisAlert(tier string) {
	if c == nil {
		return
	}
	c.CrisisAlerts.WithLabelValues(tier).Inc()
}

// RecordHTTPRequest records an HTTP request metric
func (c *Collector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ConnectionOpened increments the websocket gauge
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.ActiveConnections.Inc()
}

// ConnectionClosed decrements the websocket gauge
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.ActiveConnections.Dec()
}

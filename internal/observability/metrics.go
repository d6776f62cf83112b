package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	errors         *prometheus.CounterVec
	apiCalls       *prometheus.CounterVec
	apiLatency     *prometheus.HistogramVec
	decodeFailures prometheus.Counter
	sessions       prometheus.Gauge
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intern_dashboard_http_requests_total",
			Help: "Total number of page requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intern_dashboard_http_request_duration_seconds",
			Help:    "Duration of page requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intern_dashboard_http_errors_total",
			Help: "Requests that ended in the error middleware",
		}, []string{"route", "code"}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intern_dashboard_api_calls_total",
			Help: "Calls to the external REST API by resource and outcome",
		}, []string{"resource", "method", "outcome"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intern_dashboard_api_call_duration_seconds",
			Help:    "Latency of calls to the external REST API",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "method"}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intern_dashboard_credential_decode_failures_total",
			Help: "Credentials that could not be decoded into claims",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "intern_dashboard_sessions_active",
			Help: "Session stores held in memory",
		}),
	}
	reg.MustRegister(
		m.requests, m.requestLatency, m.errors,
		m.apiCalls, m.apiLatency, m.decodeFailures, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest counts a served page request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError counts a request handled by the error middleware.
func (m *Metrics) RecordError(route, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, code).Inc()
}

// RecordAPICall counts an outbound API call. outcome is ok, api_error, connectivity, schema or cancelled.
func (m *Metrics) RecordAPICall(resource, method, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.apiCalls.WithLabelValues(resource, method, outcome).Inc()
	m.apiLatency.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// RecordDecodeFailure counts an undecodable credential.
func (m *Metrics) RecordDecodeFailure() {
	if m == nil {
		return
	}
	m.decodeFailures.Inc()
}

// SetActiveSessions reports the number of in-memory session stores.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

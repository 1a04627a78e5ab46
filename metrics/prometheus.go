package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s0up4200/matchboard/footballdata"
	"github.com/s0up4200/matchboard/scheduler"
)

// Outcome label for successful dispatches
const outcomeOK = "ok"

// Manager owns a Prometheus registry and the metrics registered on it
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	requestsEnqueued  prometheus.Counter
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	dispatchWait      prometheus.Histogram
	queueDepth        prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	httpRequestTiming *prometheus.HistogramVec
}

var _ scheduler.Recorder = (*Manager)(nil)

// NewManager creates a metrics manager with its own registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchboard",
		subsystem:        "football_data",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requestsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_enqueued_total",
		Help:      "Total number of requests added to the queue",
	})

	m.requestsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "requests_total",
			Help:      "Total number of dispatched requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	m.requestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of dispatched requests",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint"},
	)

	m.dispatchWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_wait_seconds",
		Help:      "Time the queue waited to keep the minimum interval between requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 2},
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_depth",
		Help:      "Number of requests waiting in the queue",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP API requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestTiming = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP API request duration",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method"},
	)
}

// RequestEnqueued implements scheduler.Recorder
func (m *Manager) RequestEnqueued(depth int) {
	m.requestsEnqueued.Inc()
	m.queueDepth.Set(float64(depth))
}

// QueueDepth implements scheduler.Recorder
func (m *Manager) QueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}

// DispatchWaited implements scheduler.Recorder
func (m *Manager) DispatchWaited(wait time.Duration) {
	m.dispatchWait.Observe(wait.Seconds())
}

// RequestDispatched implements scheduler.Recorder. The outcome label is the
// error kind, or "ok".
func (m *Manager) RequestDispatched(endpoint string, duration time.Duration, err error) {
	endpoint = endpointLabel(endpoint)
	m.requestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordHTTPRequest records one HTTP API request
func (m *Manager) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestTiming.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Registry returns the registry the metrics are registered on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	var fdErr *footballdata.Error
	if errors.As(err, &fdErr) {
		return string(fdErr.Kind)
	}
	return "error"
}

// endpointLabel keeps label cardinality bounded by collapsing competition
// codes out of the path
func endpointLabel(endpoint string) string {
	if endpoint == "/matches" || endpoint == "/competitions" {
		return endpoint
	}
	rest, ok := strings.CutPrefix(endpoint, "/competitions/")
	if !ok || rest == "" {
		return "other"
	}
	if _, tail, found := strings.Cut(rest, "/"); found {
		return "/competitions/{code}/" + tail
	}
	return "/competitions/{code}"
}

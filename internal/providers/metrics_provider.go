package providers

import (
	"chatstat/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveIngestDuration(duration time.Duration)
	AddMessages(counted int, skipped map[string]int)
	SetRowsTotal(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	ingestDuration  prometheus.Histogram
	messagesCounted prometheus.Counter
	messagesSkipped *prometheus.CounterVec
	rowsTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveIngestDuration(duration time.Duration) {
	m.ingestDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddMessages(counted int, skipped map[string]int) {
	m.messagesCounted.Add(float64(counted))
	for reason, n := range skipped {
		m.messagesSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

func (m *MetricsProvider) SetRowsTotal(count int) {
	m.rowsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chatstat_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chatstat_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstat_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstat_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		ingestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatstat_ingest_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		messagesCounted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstat_messages_counted_total",
			Help: "Export records counted into the daily table",
		}),

		messagesSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chatstat_messages_skipped_total",
			Help: "Export records skipped during ingestion",
		}, []string{"reason"}),

		rowsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chatstat_rows_total",
			Help: "Rows in the currently loaded stats table",
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveIngestDuration(_ time.Duration)            {}
func (n *noopMetrics) AddMessages(_ int, _ map[string]int)              {}
func (n *noopMetrics) SetRowsTotal(_ int)                               {}

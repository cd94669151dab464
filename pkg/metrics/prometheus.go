package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	cacheTotal   *prometheus.CounterVec
	scanSymbols  prometheus.Histogram
	scanFailed   prometheus.Counter
	scanLatency  prometheus.Histogram
	errorsTotal  *prometheus.CounterVec
}

// New creates a recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registering its collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscan_provider_requests_total",
				Help: "Upstream provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockscan_provider_request_duration_seconds",
				Help:    "Upstream provider request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscan_provider_cache_total",
				Help: "Provider cache lookups by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		scanSymbols: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockscan_scan_symbols",
				Help:    "Number of symbols per scan",
				Buckets: []float64{1, 2, 5, 10, 20, 30, 50},
			},
		),
		scanFailed: f.NewCounter(
			prometheus.CounterOpts{
				Name: "stockscan_scan_failed_symbols_total",
				Help: "Symbols that produced an error row",
			},
		),
		scanLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockscan_scan_duration_seconds",
				Help:    "End-to-end scan duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordFetch records one upstream request.
func (r *Recorder) RecordFetch(endpoint string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.fetchTotal.WithLabelValues(endpoint, outcome).Inc()
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordCache records a cache lookup.
func (r *Recorder) RecordCache(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(endpoint, result).Inc()
}

// RecordScan records a finished scan.
func (r *Recorder) RecordScan(symbols, failed int, seconds float64) {
	r.scanSymbols.Observe(float64(symbols))
	r.scanFailed.Add(float64(failed))
	r.scanLatency.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Package metrics holds the Prometheus collectors for scans and RPCs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Scan pipeline stages, used as the "stage" label.
const (
	StageRecognize = "recognize"
	StagePersist   = "persist"
	StageArchive   = "archive"
)

// Metrics is the set of collectors registered on one registry.
type Metrics struct {
	Registry *prometheus.Registry

	ScansTotal   *prometheus.CounterVec
	ScanErrors   *prometheus.CounterVec
	ScanDuration *prometheus.HistogramVec
	ParsedItems  prometheus.Histogram
	RPCRequests  *prometheus.CounterVec
	RPCDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them, with the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ScansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitr",
			Name:      "scans_total",
			Help:      "Receipt frames processed, by recognizer and parser strategy.",
		}, []string{"recognizer", "strategy"}),
		ScanErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitr",
			Name:      "scan_errors_total",
			Help:      "Scan pipeline failures, by stage.",
		}, []string{"stage"}),
		ScanDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "splitr",
			Name:      "scan_duration_seconds",
			Help:      "Time spent per scan pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		ParsedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitr",
			Name:      "parsed_items",
			Help:      "Items extracted per parsed receipt.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitr",
			Name:      "rpc_requests_total",
			Help:      "RPC calls, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "splitr",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ScansTotal,
		m.ScanErrors,
		m.ScanDuration,
		m.ParsedItems,
		m.RPCRequests,
		m.RPCDuration,
	)
	return m
}

// ScanFailed counts a failure at stage. A nil receiver is a no-op so
// callers can run without metrics.
func (m *Metrics) ScanFailed(stage string) {
	if m == nil {
		return
	}
	m.ScanErrors.WithLabelValues(stage).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.ScanDuration.WithLabelValues(stage).Observe(seconds)
}

// Scanned counts a processed frame and its item count.
func (m *Metrics) Scanned(recognizer, strategy string, items int) {
	if m == nil {
		return
	}
	m.ScansTotal.WithLabelValues(recognizer, strategy).Inc()
	m.ParsedItems.Observe(float64(items))
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

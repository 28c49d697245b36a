// Package observability provides Prometheus metrics for a token lookup run.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage results.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultDegraded = "degraded"
)

// Metrics holds all Prometheus metrics for one process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	StageDuration  *prometheus.HistogramVec
	StageResults   *prometheus.CounterVec
	RPCCallLatency *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance on a private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_token_info"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each lookup stage in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		StageResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_results_total",
			Help:      "Lookup stage outcomes by result",
		}, []string{"stage", "result"}),
		RPCCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "status"}),
	}
}

// ObserveStage records how long a stage took and how it ended.
func (m *Metrics) ObserveStage(stage, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	m.StageResults.WithLabelValues(stage, result).Inc()
}

// ObserveRPC records one RPC round trip. Its signature matches
// solana.RequestObserver.
func (m *Metrics) ObserveRPC(method string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := ResultOK
	if err != nil {
		status = ResultError
	}
	m.RPCCallLatency.WithLabelValues(method, status).Observe(elapsed.Seconds())
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

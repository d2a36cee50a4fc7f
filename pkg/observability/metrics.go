package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of a lint run. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal       *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	RuleChecksTotal *prometheus.CounterVec
	FailuresTotal   *prometheus.CounterVec
	FlushOpsTotal   *prometheus.CounterVec
	GraphNodes      prometheus.Gauge
	PackagesTotal   prometheus.Gauge
}

// NewMetrics creates and registers all metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkglint_runs_total",
				Help: "Total number of lint runs",
			},
			[]string{"mode", "status"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pkglint_run_duration_seconds",
				Help:    "Lint run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		RuleChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkglint_rule_checks_total",
				Help: "Total number of rule checks per package",
			},
			[]string{"rule"},
		),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkglint_failures_total",
				Help: "Total number of rule failures",
			},
			[]string{"rule", "fixed"},
		),
		FlushOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkglint_flush_operations_total",
				Help: "Total number of flushed file system operations",
			},
			[]string{"status"},
		),
		GraphNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pkglint_graph_nodes",
				Help: "Nodes in the most recently built dependency graph",
			},
		),
		PackagesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pkglint_packages",
				Help: "Packages checked in the most recent run",
			},
		),
	}

	registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.RuleChecksTotal,
		m.FailuresTotal,
		m.FlushOpsTotal,
		m.GraphNodes,
		m.PackagesTotal,
	)

	return m
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRun records a finished run
func (m *Metrics) RecordRun(fix bool, err error, duration time.Duration, packages int) {
	if m == nil {
		return
	}
	mode := "check"
	if fix {
		mode = "fix"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RunsTotal.WithLabelValues(mode, status).Inc()
	m.RunDuration.Observe(duration.Seconds())
	m.PackagesTotal.Set(float64(packages))
}

// RecordRuleCheck records one rule checked against one package
func (m *Metrics) RecordRuleCheck(rule string) {
	if m == nil {
		return
	}
	m.RuleChecksTotal.WithLabelValues(rule).Inc()
}

// RecordFailure records a rule failure
func (m *Metrics) RecordFailure(rule string, fixed bool) {
	if m == nil {
		return
	}
	label := "false"
	if fixed {
		label = "true"
	}
	m.FailuresTotal.WithLabelValues(rule, label).Inc()
}

// RecordFlush records the outcome of a session flush
func (m *Metrics) RecordFlush(attempted, failed int) {
	if m == nil {
		return
	}
	m.FlushOpsTotal.WithLabelValues("success").Add(float64(attempted - failed))
	m.FlushOpsTotal.WithLabelValues("failure").Add(float64(failed))
}

// RecordGraph records the size of a built dependency graph
func (m *Metrics) RecordGraph(nodes int) {
	if m == nil {
		return
	}
	m.GraphNodes.Set(float64(nodes))
}

// WriteToTextfile writes the metrics in the node exporter textfile format
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

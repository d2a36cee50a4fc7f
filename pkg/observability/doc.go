// Package observability provides the process logger and the Prometheus metrics of a lint
// run.
//
// # Overview
//
// pkglint is a short lived CLI, so metrics are not served over HTTP. They are collected in a
// private registry and, when requested, written once at the end of the run in the node
// exporter textfile format.
//
// # Structured Logging
//
// Create logger:
//
//	level, err := observability.ParseLevel("debug")
//	logger, err := observability.NewLogger(level, observability.FormatJSON, os.Stderr)
//	logger.WithField("run_id", runID).Info("run finished")
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.RecordFailure("require-dependency", true)
//	if err := metrics.WriteToTextfile("/var/lib/node_exporter/pkglint.prom"); err != nil {
//		return err
//	}
//
// A nil *Metrics is valid and records nothing.
package observability

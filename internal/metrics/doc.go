// Package metrics records build and stage metrics.
//
// Components receive a Recorder. NoopRecorder is the default so callers never
// check for nil; PrometheusRecorder collects into a registry that the CLI
// writes out in the Prometheus text format for node_exporter's textfile
// collector:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	builder := build.New(cfg).WithRecorder(rec)
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/snippetdoc.prom")
package metrics

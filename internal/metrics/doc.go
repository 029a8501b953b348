// Package metrics records handbook build metrics.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder registers collectors on a registry and can
// write them as a node_exporter textfile after a build.
package metrics

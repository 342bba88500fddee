// Package metrics records the outcome of a conversion run as Prometheus
// gauges and exports them in the text exposition format for node_exporter's
// textfile collector.
package metrics

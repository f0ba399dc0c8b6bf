// Package metrics collects runtime memory readings and the Prometheus series
// exported at the end of a benchmark run.
package metrics

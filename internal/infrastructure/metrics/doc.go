// Package metrics instruments Crypto implementations with Prometheus counters and latency histograms.
package metrics

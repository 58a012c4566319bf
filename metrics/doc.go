// Package metrics exposes engine results as Prometheus gauges.
//
// NewRegistry builds a private prometheus.Registry and registers every
// collector with promauto.With, so several engines (or tests) never clash on
// the default registerer. The Record helpers copy stage results into the
// gauges; all of them accept a nil *Registry and do nothing.
package metrics

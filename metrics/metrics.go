// Package metrics provides Prometheus metrics collection for the
// drugclass API: HTTP request counters, latency histograms, in-flight
// gauge, and dataset gauges updated after each build (table size and the
// fraction of names that resolved to no identifier).
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	DrugTableRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "drug_table_rows",
			Help: "Rows in the enriched drug table after the last build",
		},
	)

	UnmatchedNameRatio = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "drug_table_unmatched_name_ratio",
			Help: "Fraction of drug names that resolved to no identifier in the last build",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(DrugTableRows)
	prometheus.MustRegister(UnmatchedNameRatio)
}

// Package metrics declares the Prometheus collectors for the portfolio server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

var (
	// HTTPRequests counts requests.
	// Labels: route (chi route pattern), method, status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration tracks request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// ProjectOperations counts edit form operations.
	// Labels: op (select, create, update, delete, clear), result (ok, error)
	ProjectOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "operations_total",
			Help:      "Project edit operations by kind and result",
		},
		[]string{"op", "result"},
	)

	// StoredProjects reports the list length after the last load or save.
	StoredProjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "stored",
			Help:      "Number of project records in the store",
		},
	)

	// RemoteFetches counts remote project loads.
	// Labels: result (ok, error)
	RemoteFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "fetches_total",
			Help:      "Remote project list fetches by result",
		},
		[]string{"result"},
	)

	// ThemeApplied counts theme changes by mode.
	ThemeApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "theme",
			Name:      "applied_total",
			Help:      "Theme applications by mode",
		},
		[]string{"mode"},
	)
)

// Result maps an error to the result label
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

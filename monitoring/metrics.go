package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_total",
			Help: "Total catalog fetch cycles by outcome",
		},
		[]string{"status"},
	)

	catalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_events",
			Help: "Number of discoverable events in the current catalog",
		},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_attempts_total",
			Help: "Total registration attempts by outcome",
		},
		[]string{"result"},
	)

	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Requests to the campus event API by method and status class",
		},
		[]string{"method", "status"},
	)
)

// CatalogFetch records one fetch cycle outcome ("ok" or "error").
func CatalogFetch(status string) {
	catalogFetches.WithLabelValues(status).Inc()
}

// SetCatalogSize records the discoverable event count after a fetch.
func SetCatalogSize(n int) {
	catalogSize.Set(float64(n))
}

// Registration records one registration attempt outcome ("ok" or "error").
func Registration(result string) {
	registrations.WithLabelValues(result).Inc()
}

// UpstreamRequest records one call to the campus API. status is the coarse
// class ("2xx", "4xx", "5xx", "network_error").
func UpstreamRequest(method, status string) {
	upstreamRequests.WithLabelValues(method, status).Inc()
}

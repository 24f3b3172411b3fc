// Package observability exposes Prometheus metrics for the monitor.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricewatch/internal/logger"
)

var (
	FetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_fetch_failures_total",
			Help: "Product page fetches that failed at the transport level",
		},
	)

	ExtractionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_extraction_failures_total",
			Help: "Pages fetched but discarded during extraction",
		},
	)

	ObservationsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_observations_recorded_total",
			Help: "Price observations persisted to the store",
		},
	)

	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_notification_failures_total",
			Help: "Status messages that could not be delivered",
		},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricewatch_cycle_duration_seconds",
			Help:    "Duration of one full pass over the URL list",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Start registers the collectors and serves /metrics on the given port.
func Start(port string) {
	prometheus.MustRegister(
		FetchFailures,
		ExtractionFailures,
		ObservationsRecorded,
		NotificationFailures,
		CycleDuration,
	)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			logger.Get().Errorw("metrics listener stopped", "port", port, "error", err)
		}
	}()
}

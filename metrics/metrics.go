package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "civicreport_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SubmissionsTotal counts submit outcomes: created, validation, malformed_location,
	// storage, persistence, unexpected.
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_submissions_total",
			Help: "Submission attempts by outcome",
		},
		[]string{"outcome"},
	)

	MediaStoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_media_stored_total",
			Help: "Uploaded media objects by storage backend and result",
		},
		[]string{"backend", "result"},
	)

	ListingErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "civicreport_listing_errors_total",
			Help: "Review listing queries that failed and were answered with an empty list",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		SubmissionsTotal,
		MediaStoredTotal,
		ListingErrorsTotal,
	)
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, route, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

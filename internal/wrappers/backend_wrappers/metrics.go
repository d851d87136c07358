package wrappers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests to the seller backend",
		},
		[]string{"resource", "method", "status"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Histogram of seller backend response time",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		backendRequestsTotal,
		backendRequestDuration,
	)
}

func observeBackend(resource Resource, method, status string, start time.Time) {
	backendRequestsTotal.WithLabelValues(string(resource), method, status).Inc()
	backendRequestDuration.WithLabelValues(string(resource), method).Observe(time.Since(start).Seconds())
}

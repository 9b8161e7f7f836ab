// Package metrics defines the Prometheus instrumentation for the wall.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wall_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wall_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// Submission metrics
var (
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wall_submissions_total",
		Help: "Total number of accepted message submissions",
	})

	SubmissionsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wall_submissions_rejected_total",
		Help: "Total number of rejected submissions by reason",
	}, []string{"reason"})
)

// Moderation metrics
var (
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wall_transitions_total",
		Help: "Total number of moderation transitions by target status",
	}, []string{"status"})

	PendingMessages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wall_pending_messages",
		Help: "Current number of messages awaiting moderation",
	})
)

// Change feed metrics
var (
	SubscribersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wall_subscribers_active",
		Help: "Number of connected change-feed subscribers",
	})
)

// NormalizePath collapses id path segments so the metric cardinality stays
// bounded: /api/messages/42/status -> /api/messages/{id}/status.
func NormalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if isNumeric(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered with the default registry through promauto.

var (
	// ==================== HTTP METRICS ====================

	// HTTPRequestDuration tracks the duration of HTTP requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsTotal counts total HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsInFlight tracks currently processing requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// ==================== FORM METRICS ====================

	// FormSubmissionsTotal counts validated submissions by outcome
	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submissions validated by the server",
		},
		[]string{"outcome"}, // accepted, rejected
	)

	// FormFieldErrorsTotal counts rejected fields, one per field per submission
	FormFieldErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_field_errors_total",
			Help: "Total number of field errors returned to clients",
		},
		[]string{"field"},
	)

	// FormMalformedRequestsTotal counts bodies that could not be validated at all
	FormMalformedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_malformed_requests_total",
			Help: "Total number of form requests rejected before validation",
		},
		[]string{"reason"}, // invalid_json, not_an_object, body_too_large
	)
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// RecordSubmission increments the submission counter for an outcome
func RecordSubmission(outcome string) {
	FormSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordFieldError increments the per-field error counter
func RecordFieldError(field string) {
	FormFieldErrorsTotal.WithLabelValues(field).Inc()
}

// RecordMalformed increments the malformed request counter
func RecordMalformed(reason string) {
	FormMalformedRequestsTotal.WithLabelValues(reason).Inc()
}

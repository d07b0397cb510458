package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts assessment submissions by final status.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_submissions_total",
			Help: "Total number of assessment submissions by status",
		},
		[]string{"status"},
	)

	// ReportOutcomes counts report compositions by outcome and variant.
	ReportOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_report_outcomes_total",
			Help: "Total number of composed reports by outcome",
		},
		[]string{"outcome", "variant"},
	)

	// ReportDuration tracks time spent composing a report, including fallbacks.
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_report_duration_seconds",
			Help:    "Duration of report composition in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 4, 8, 16},
		},
		[]string{"outcome"},
	)

	// DeliveriesTotal counts sink deliveries by sink and result.
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_deliveries_total",
			Help: "Total number of delivery attempts by sink and result",
		},
		[]string{"sink", "result"},
	)

	// HTTPRequestDuration tracks request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assessment_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)

	// RateLimitedRequests counts requests rejected by the rate limiter.
	RateLimitedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

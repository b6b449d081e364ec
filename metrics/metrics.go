// Package metrics provides Prometheus metrics for the Reddit Content MCP server.
// It tracks tool calls, Reddit API latency, throttling and write operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "reddit_content_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// ToolErrors counts tool failures returned to callers by error code
	ToolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tool_errors_total",
		Help:      "Tool failures returned to callers by tool and error code",
	}, []string{"tool", "code"})

	// RedditAPILatency measures Reddit API call latency by client and action
	RedditAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "reddit_api_latency_seconds",
		Help:      "Reddit API call latency by client and action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"client", "action"})

	// RedditAPIRequestsTotal counts Reddit API requests
	RedditAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reddit_api_requests_total",
		Help:      "Total Reddit API requests by client, action and status",
	}, []string{"client", "action", "status"})

	// RedditAPIErrors counts Reddit API errors by HTTP status
	RedditAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reddit_api_errors_total",
		Help:      "Reddit API errors by client, action and HTTP status",
	}, []string{"client", "action", "status_code"})

	// RateLimitWaits counts requests that had to wait for the outbound throttle
	RateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_waits_total",
		Help:      "Reddit API requests that waited for the throttle",
	})

	// RateLimitRejections counts inbound HTTP requests rejected by the per-IP limiter
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected due to rate limiting",
	})

	// AuthFailures counts authentication failures
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// WriteOperations counts write operations by type
	WriteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "write_operations_total",
		Help:      "Write operations by type and status",
	}, []string{"operation", "status"})

	// ContentSize tracks rendered output sizes
	ContentSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "content_size_bytes",
		Help:      "Rendered tool output size distribution in bytes",
		Buckets:   []float64{100, 1000, 10000, 50000, 100000, 250000, 500000, 1000000},
	}, []string{"tool"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, statusLabel(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordToolError records a failure returned to the caller
func RecordToolError(tool, code string) {
	ToolErrors.WithLabelValues(tool, code).Inc()
}

// RecordAPICall records a Reddit API call. statusCode is empty on success
// or when the failure carried no HTTP status.
func RecordAPICall(client, action string, duration float64, success bool, statusCode string) {
	RedditAPIRequestsTotal.WithLabelValues(client, action, statusLabel(success)).Inc()
	RedditAPILatency.WithLabelValues(client, action).Observe(duration)
	if !success && statusCode != "" {
		RedditAPIErrors.WithLabelValues(client, action, statusCode).Inc()
	}
}

// RecordWriteOperation records a submit, comment or vote attempt
func RecordWriteOperation(operation string, success bool) {
	WriteOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

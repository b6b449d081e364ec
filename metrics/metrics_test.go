package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, RequestsTotal.WithLabelValues(tt.tool, tt.wantStatus))

			RecordRequest(tt.tool, tt.duration, tt.success)

			if got := counterValue(t, RequestsTotal.WithLabelValues(tt.tool, tt.wantStatus)); got != before+1 {
				t.Errorf("requests_total{status=%q} = %v, want %v", tt.wantStatus, got, before+1)
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		success    bool
		statusCode string
	}{
		{
			name:    "successful API call",
			action:  "hot",
			success: true,
		},
		{
			name:       "failed API call with status code",
			action:     "submit",
			success:    false,
			statusCode: "403",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := "success"
			if !tt.success {
				status = "error"
			}
			before := counterValue(t, RedditAPIRequestsTotal.WithLabelValues("write", tt.action, status))

			RecordAPICall("write", tt.action, 0.2, tt.success, tt.statusCode)

			if got := counterValue(t, RedditAPIRequestsTotal.WithLabelValues("write", tt.action, status)); got != before+1 {
				t.Errorf("reddit_api_requests_total = %v, want %v", got, before+1)
			}

			if tt.statusCode != "" {
				if got := counterValue(t, RedditAPIErrors.WithLabelValues("write", tt.action, tt.statusCode)); got < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestRecordToolError(t *testing.T) {
	before := counterValue(t, ToolErrors.WithLabelValues("vote_on_reddit_content", "UNSUPPORTED_ARGUMENT"))

	RecordToolError("vote_on_reddit_content", "UNSUPPORTED_ARGUMENT")

	if got := counterValue(t, ToolErrors.WithLabelValues("vote_on_reddit_content", "UNSUPPORTED_ARGUMENT")); got != before+1 {
		t.Errorf("tool_errors_total = %v, want %v", got, before+1)
	}
}

func TestRecordWriteOperation(t *testing.T) {
	beforeOK := counterValue(t, WriteOperations.WithLabelValues("vote", "success"))
	beforeErr := counterValue(t, WriteOperations.WithLabelValues("vote", "error"))

	RecordWriteOperation("vote", true)
	RecordWriteOperation("vote", false)

	if got := counterValue(t, WriteOperations.WithLabelValues("vote", "success")); got != beforeOK+1 {
		t.Errorf("success count = %v, want %v", got, beforeOK+1)
	}
	if got := counterValue(t, WriteOperations.WithLabelValues("vote", "error")); got != beforeErr+1 {
		t.Errorf("error count = %v, want %v", got, beforeErr+1)
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		ToolErrors,
		RedditAPILatency,
		RedditAPIRequestsTotal,
		RedditAPIErrors,
		RateLimitWaits,
		RateLimitRejections,
		AuthFailures,
		PanicsRecovered,
		HTTPRequestsTotal,
		WriteOperations,
		ContentSize,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "reddit_content_mcp" {
		t.Errorf("expected namespace 'reddit_content_mcp', got '%s'", Namespace)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

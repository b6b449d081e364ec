// Package base provides shared client infrastructure for the Reddit API:
// authenticated HTTP transports, go-reddit client construction and a call
// wrapper that throttles, traces and records every API request.
package base

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/config"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/infra"
	"github.com/olgasafonova/reddit-content-mcp-server/metrics"
	"github.com/olgasafonova/reddit-content-mcp-server/tracing"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// OAuthBaseURL serves every authenticated API call
	OAuthBaseURL = "https://oauth.reddit.com"

	// Client labels used in metrics and traces
	ReadClient  = "read"
	WriteClient = "write"
)

// Client wraps a go-reddit client with throttling and instrumentation.
type Client struct {
	Reddit   *reddit.Client
	Logger   *slog.Logger
	Throttle *infra.Throttle

	name string
}

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	endpoint   *Endpoint
	throttle   *infra.Throttle
}

// ClientOption configures the Client
type ClientOption func(*options)

// WithHTTPClient sets the HTTP client used for the API and token requests
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(o *options) {
		o.logger = l
	}
}

// WithBaseURL overrides the Reddit API base URL
func WithBaseURL(u string) ClientOption {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithEndpoint overrides the OAuth authorize and token URLs
func WithEndpoint(e Endpoint) ClientOption {
	return func(o *options) {
		o.endpoint = &e
	}
}

// WithThrottle shares a throttle between clients
func WithThrottle(t *infra.Throttle) ClientOption {
	return func(o *options) {
		o.throttle = t
	}
}

func buildOptions(cfg *config.Config, opts []ClientOption) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.httpClient == nil {
		o.httpClient = NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	}
	if o.throttle == nil {
		o.throttle = infra.NewThrottle(cfg.RequestsPerMinute, infra.MaxConcurrentRequests)
	}
	return o
}

// NewReadClient creates the client used by the read tools. With application
// credentials it authenticates app-only through the client credentials grant;
// without them it falls back to anonymous read-only access.
func NewReadClient(ctx context.Context, cfg *config.Config, opts ...ClientOption) (*Client, error) {
	o := buildOptions(cfg, opts)

	var (
		rc  *reddit.Client
		err error
	)
	if cfg.HasAppCredentials() {
		hc := appOnlyHTTPClient(ctx, cfg, o.httpClient, o.endpointOr(DefaultEndpoint))
		rc, err = reddit.NewReadonlyClient(
			reddit.WithHTTPClient(hc),
			reddit.WithBaseURL(o.baseURLOr(OAuthBaseURL)),
			reddit.WithUserAgent(cfg.UserAgent),
		)
		o.logger.Info("Reddit read client configured", "mode", "app-only")
	} else {
		readOpts := []reddit.Opt{
			reddit.WithHTTPClient(o.httpClient),
			reddit.WithUserAgent(cfg.UserAgent),
		}
		if o.baseURL != "" {
			readOpts = append(readOpts, reddit.WithBaseURL(o.baseURL))
		}
		rc, err = reddit.NewReadonlyClient(readOpts...)
		o.logger.Info("Reddit read client configured", "mode", "anonymous")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Reddit read client: %w", err)
	}

	return &Client{Reddit: rc, Logger: o.logger, Throttle: o.throttle, name: ReadClient}, nil
}

// NewWriteClient creates the user-context client used by the write tools.
// Access tokens are minted from the configured refresh token on demand.
func NewWriteClient(ctx context.Context, cfg *config.Config, opts ...ClientOption) (*Client, error) {
	if !cfg.HasWriteCredentials() {
		return nil, fmt.Errorf("write credentials missing: %v", cfg.MissingWriteCredentials())
	}
	o := buildOptions(cfg, opts)

	hc := refreshTokenHTTPClient(ctx, cfg, o.httpClient, o.endpointOr(DefaultEndpoint))
	rc, err := reddit.NewReadonlyClient(
		reddit.WithHTTPClient(hc),
		reddit.WithBaseURL(o.baseURLOr(OAuthBaseURL)),
		reddit.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Reddit write client: %w", err)
	}

	return &Client{Reddit: rc, Logger: o.logger, Throttle: o.throttle, name: WriteClient}, nil
}

func (o *options) baseURLOr(def string) string {
	if o.baseURL != "" {
		return o.baseURL
	}
	return def
}

func (o *options) endpointOr(def Endpoint) Endpoint {
	if o.endpoint != nil {
		return *o.endpoint
	}
	return def
}

// Name returns the metrics label of the client ("read" or "write")
func (c *Client) Name() string {
	return c.name
}

// Call runs fn under the throttle and records latency, status and a span for
// the API action. target is the subreddit or thing id, used for tracing.
func (c *Client) Call(ctx context.Context, action, target string, fn func(context.Context) (*reddit.Response, error)) error {
	ctx, span := tracing.StartRedditSpan(ctx, c.name, action, target)
	defer span.End()

	release, waited, err := c.Throttle.Acquire(ctx)
	if err != nil {
		tracing.FinishSpan(span, err)
		return err
	}
	defer release()
	if waited {
		metrics.RateLimitWaits.Inc()
	}

	start := time.Now()
	resp, err := fn(ctx)
	duration := time.Since(start)

	status := statusCode(resp)
	metrics.RecordAPICall(c.name, action, duration.Seconds(), err == nil, status)
	tracing.RecordRedditStatus(span, status)
	tracing.FinishSpan(span, err)

	if err != nil {
		c.Logger.Warn("Reddit API call failed",
			"client", c.name,
			"action", action,
			"target", target,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return err
	}

	c.Logger.Debug("Reddit API call",
		"client", c.name,
		"action", action,
		"target", target,
		"duration_ms", duration.Milliseconds())
	return nil
}

func statusCode(resp *reddit.Response) string {
	if resp == nil || resp.Response == nil {
		return ""
	}
	return strconv.Itoa(resp.StatusCode)
}

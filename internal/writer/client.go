// Package writer implements the write tools: submitting posts, commenting
// and voting as the configured account.
package writer

import (
	"log/slog"
)

// Client performs writes through a Session. A nil session means writes were
// never configured or failed to initialize, and every write is refused.
type Client struct {
	session *Session
	logger  *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a write client. session may be nil.
func NewClient(session *Session, opts ...ClientOption) *Client {
	c := &Client{
		session: session,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether a session exists.
func (c *Client) Authenticated() bool {
	return c.session != nil
}

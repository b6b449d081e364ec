// Package reader implements the read tools: hot listings of a community and
// the discussion of a single post.
package reader

import (
	"context"
	"iter"
	"log/slog"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/content"
)

const (
	// DefaultCount of hot posts returned when the caller gives none
	DefaultCount = 10

	// DefaultMaxComments of top-level comments in a discussion
	DefaultMaxComments = 20

	// DefaultCommentTreeDepth of levels rendered in a discussion
	DefaultCommentTreeDepth = 3
)

// Client provides read access to communities and posts.
// It is safe for concurrent use.
type Client struct {
	source Source
	logger *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a read client over source
func NewClient(source Source, opts ...ClientOption) *Client {
	c := &Client{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchHot lazily yields up to count hot posts of community in listing order.
// Pages are requested only as the sequence is consumed; a count of zero or
// less yields nothing and performs no request. The sequence stops after the
// first error.
func (c *Client) FetchHot(ctx context.Context, community string, count int) iter.Seq2[content.Post, error] {
	return func(yield func(content.Post, error) bool) {
		remaining := count
		after := ""
		for remaining > 0 {
			posts, next, err := c.source.HotPage(ctx, community, min(remaining, MaxPageSize), after)
			if err != nil {
				yield(content.Post{}, err)
				return
			}
			for _, p := range posts {
				if remaining == 0 {
					return
				}
				if !yield(p, nil) {
					return
				}
				remaining--
			}
			if next == "" || len(posts) == 0 {
				return
			}
			after = next
		}
	}
}

// FetchPost returns a single post by id.
func (c *Client) FetchPost(ctx context.Context, id string) (content.Post, error) {
	return c.source.Post(ctx, id)
}

// FetchCommentTree returns the comment forest of a post, bounded by opts.
func (c *Client) FetchCommentTree(ctx context.Context, id string, opts CommentTreeOptions) ([]content.CommentNode, error) {
	return c.source.CommentTree(ctx, id, opts)
}

package reader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/content"
)

// MaxPageSize is the largest listing page the API returns.
const MaxPageSize = 100

// CommentTreeOptions shapes a comment tree request.
type CommentTreeOptions struct {
	Sort  string // "top", "best", "new", ...
	Limit int    // top-level comments to keep
	Depth int    // levels to keep, counting the top level
}

// Source is the read side of the Reddit API.
type Source interface {
	// HotPage returns one page of hot posts and the cursor of the next page,
	// empty when the listing is exhausted.
	HotPage(ctx context.Context, community string, limit int, after string) ([]content.Post, string, error)

	// Post returns a single post by id (no kind prefix).
	Post(ctx context.Context, id string) (content.Post, error)

	// CommentTree returns the comment forest of a post.
	CommentTree(ctx context.Context, id string, opts CommentTreeOptions) ([]content.CommentNode, error)
}

type redditSource struct {
	client *base.Client
}

// NewRedditSource reads through a go-reddit backed client.
func NewRedditSource(client *base.Client) Source {
	return &redditSource{client: client}
}

func (s *redditSource) HotPage(ctx context.Context, community string, limit int, after string) ([]content.Post, string, error) {
	var (
		posts []*reddit.Post
		next  string
	)
	err := s.client.Call(ctx, "hot", community, func(ctx context.Context) (*reddit.Response, error) {
		var (
			resp *reddit.Response
			err  error
		)
		posts, resp, err = s.client.Reddit.Subreddit.HotPosts(ctx, community, &reddit.ListOptions{
			Limit: limit,
			After: after,
		})
		if resp != nil {
			next = resp.After
		}
		return resp, err
	})
	if err != nil {
		return nil, "", err
	}

	out := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, base.PostFromReddit(p))
	}
	return out, next, nil
}

func (s *redditSource) Post(ctx context.Context, id string) (content.Post, error) {
	var pc *reddit.PostAndComments
	err := s.client.Call(ctx, "post", id, func(ctx context.Context) (*reddit.Response, error) {
		var (
			resp *reddit.Response
			err  error
		)
		pc, resp, err = s.client.Reddit.Post.Get(ctx, id)
		return resp, err
	})
	if err != nil {
		return content.Post{}, err
	}
	if pc == nil || pc.Post == nil {
		return content.Post{}, fmt.Errorf("post %s not found", id)
	}
	return base.PostFromReddit(pc.Post), nil
}

func (s *redditSource) CommentTree(ctx context.Context, id string, opts CommentTreeOptions) ([]content.CommentNode, error) {
	q := url.Values{}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Depth > 0 {
		q.Set("depth", strconv.Itoa(opts.Depth))
	}
	path := "comments/" + id
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	pc := new(reddit.PostAndComments)
	err := s.client.Call(ctx, "comments", id, func(ctx context.Context) (*reddit.Response, error) {
		req, err := s.client.Reddit.NewRequest(http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		return s.client.Reddit.Do(ctx, req, pc)
	})
	if err != nil {
		return nil, err
	}
	return base.CommentTreeFromReddit(pc.Comments, opts.Limit, opts.Depth), nil
}

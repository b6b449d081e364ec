package reader

import (
	"context"
	"fmt"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/content"
	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// FetchTrendingPostsMCP is the MCP wrapper for FetchHot
func (c *Client) FetchTrendingPostsMCP(ctx context.Context, args FetchTrendingPostsArgs) (FetchTrendingPostsResult, error) {
	community := base.NormalizeSubreddit(args.Community)
	if err := base.ValidateSubredditList(community); err != nil {
		return FetchTrendingPostsResult{}, apierrors.NewInvalidArgument("Failed to retrieve trending posts: " + err.Error())
	}

	count := DefaultCount
	if args.Count != nil {
		count = *args.Count
	}

	var posts []content.Post
	for p, err := range c.FetchHot(ctx, community, count) {
		if err != nil {
			c.logger.Error("Failed to retrieve trending posts",
				"community", community,
				"count", count,
				"error", err)
			return FetchTrendingPostsResult{}, apierrors.NewRemoteFailure("Failed to retrieve trending posts", err)
		}
		posts = append(posts, p)
	}

	if len(posts) == 0 {
		return FetchTrendingPostsResult{
			Text:      fmt.Sprintf("No trending posts found in r/%s", community),
			Community: community,
			Empty:     true,
		}, nil
	}

	return FetchTrendingPostsResult{
		Text:      content.FormatPostBlocks(posts),
		Community: community,
		Count:     len(posts),
	}, nil
}

// FetchPostDiscussionMCP is the MCP wrapper for FetchPost and FetchCommentTree
func (c *Client) FetchPostDiscussionMCP(ctx context.Context, args FetchPostDiscussionArgs) (FetchPostDiscussionResult, error) {
	if err := ValidateThreadID(args.ThreadID); err != nil {
		return FetchPostDiscussionResult{}, apierrors.NewInvalidArgument("Failed to analyze discussion: " + err.Error())
	}
	id := base.StripKind(args.ThreadID)

	opts := CommentTreeOptions{
		Sort:  "top",
		Limit: DefaultMaxComments,
		Depth: DefaultCommentTreeDepth,
	}
	if args.MaxComments != nil {
		opts.Limit = *args.MaxComments
	}
	if args.CommentTreeDepth != nil {
		opts.Depth = *args.CommentTreeDepth
	}

	post, err := c.FetchPost(ctx, id)
	if err != nil {
		c.logger.Error("Failed to analyze discussion", "thread_id", id, "stage", "post", "error", err)
		return FetchPostDiscussionResult{}, apierrors.NewRemoteFailure("Failed to analyze discussion", err)
	}

	comments, err := c.FetchCommentTree(ctx, id, opts)
	if err != nil {
		c.logger.Error("Failed to analyze discussion", "thread_id", id, "stage", "comments", "error", err)
		return FetchPostDiscussionResult{}, apierrors.NewRemoteFailure("Failed to analyze discussion", err)
	}

	return FetchPostDiscussionResult{
		Text:         content.FormatDiscussion(post, comments),
		ThreadID:     id,
		Title:        post.Title,
		ContentKind:  string(content.Classify(post)),
		CommentCount: len(comments),
		Empty:        len(comments) == 0,
	}, nil
}

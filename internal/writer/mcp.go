package writer

import (
	"context"
	"strings"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
	"github.com/olgasafonova/reddit-content-mcp-server/metrics"
)

// MCP Tool wrapper methods
// Each write checks, in order: session present, arguments, live identity,
// then performs the action. Argument failures never reach the API.

// CreatePostMCP submits a text or link post
func (c *Client) CreatePostMCP(ctx context.Context, args CreatePostArgs) (CreatePostResult, error) {
	const action = "create post"
	if c.session == nil {
		return CreatePostResult{}, apierrors.NewConfigurationMissing(action)
	}

	postType, err := ParsePostType(args.ContentType)
	if err != nil {
		return CreatePostResult{}, err
	}
	if postType == PostTypeLink {
		if strings.TrimSpace(args.URL) == "" {
			return CreatePostResult{}, apierrors.NewInvalidArgument("Cannot create link post: URL is required")
		}
		if err := ValidateLinkURL(args.URL); err != nil {
			return CreatePostResult{}, apierrors.NewInvalidArgument("Cannot create link post: " + err.Error())
		}
	}
	subreddit := base.NormalizeSubreddit(args.Subreddit)
	if err := base.ValidateSubreddit(subreddit); err != nil {
		return CreatePostResult{}, apierrors.NewInvalidArgument("Cannot create post: " + err.Error())
	}
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return CreatePostResult{}, apierrors.NewInvalidArgument("Cannot create post: title is required")
	}

	if err := c.verify(ctx, action); err != nil {
		return CreatePostResult{}, err
	}

	var sub Submission
	if postType == PostTypeLink {
		sub, err = c.session.api.SubmitLink(ctx, subreddit, title, strings.TrimSpace(args.URL))
	} else {
		sub, err = c.session.api.SubmitText(ctx, subreddit, title, args.Content)
	}
	metrics.RecordWriteOperation("submit_"+string(postType), err == nil)
	if err != nil {
		c.logger.Error("Failed to create Reddit post",
			"subreddit", subreddit,
			"type", postType,
			"error", err)
		return CreatePostResult{}, apierrors.NewRemoteFailure("Failed to create Reddit post", err)
	}

	c.logger.Info("Post created", "subreddit", subreddit, "type", postType, "url", sub.URL)
	return CreatePostResult{
		Text:      "Post created successfully: " + sub.URL,
		URL:       sub.URL,
		ID:        sub.ID,
		Subreddit: subreddit,
		Type:      string(postType),
	}, nil
}

// AddCommentMCP comments on a post, or replies to a comment when
// ReplyToCommentID is set
func (c *Client) AddCommentMCP(ctx context.Context, args AddCommentArgs) (AddCommentResult, error) {
	const action = "add comment"
	if c.session == nil {
		return AddCommentResult{}, apierrors.NewConfigurationMissing(action)
	}

	replyTo := strings.TrimSpace(args.ReplyToCommentID)
	postID := strings.TrimSpace(args.PostID)
	if replyTo == "" && postID == "" {
		return AddCommentResult{}, apierrors.NewInvalidArgument("Error: Must provide either post_id or reply_to_comment_id")
	}

	var parent string
	if replyTo != "" {
		if err := ValidateContentID("reply_to_comment_id", replyTo); err != nil {
			return AddCommentResult{}, apierrors.NewInvalidArgument("Cannot add comment: " + err.Error())
		}
		parent = base.CommentFullname(replyTo)
	} else {
		if err := ValidateContentID("post_id", postID); err != nil {
			return AddCommentResult{}, apierrors.NewInvalidArgument("Cannot add comment: " + err.Error())
		}
		parent = base.PostFullname(postID)
	}
	if strings.TrimSpace(args.CommentText) == "" {
		return AddCommentResult{}, apierrors.NewInvalidArgument("Cannot add comment: comment_text is required")
	}

	if err := c.verify(ctx, action); err != nil {
		return AddCommentResult{}, err
	}

	sub, err := c.session.api.Comment(ctx, parent, args.CommentText)
	metrics.RecordWriteOperation("comment", err == nil)
	if err != nil {
		c.logger.Error("Failed to create Reddit comment", "parent", parent, "error", err)
		return AddCommentResult{}, apierrors.NewRemoteFailure("Failed to create Reddit comment", err)
	}

	isReply := replyTo != ""
	text := "Comment created successfully: " + sub.URL
	if isReply {
		text = "Comment reply created successfully: " + sub.URL
	}

	c.logger.Info("Comment created", "parent", parent, "url", sub.URL)
	return AddCommentResult{
		Text:     text,
		URL:      sub.URL,
		ID:       sub.ID,
		ParentID: parent,
		IsReply:  isReply,
	}, nil
}

// VoteOnContentMCP upvotes, downvotes or clears the vote on a post or comment
func (c *Client) VoteOnContentMCP(ctx context.Context, args VoteOnContentArgs) (VoteOnContentResult, error) {
	const action = "vote"
	if c.session == nil {
		return VoteOnContentResult{}, apierrors.NewConfigurationMissing(action)
	}

	target, err := ParseTarget(args.ContentType)
	if err != nil {
		return VoteOnContentResult{}, err
	}
	dir, err := ParseDirection(args.VoteDirection)
	if err != nil {
		return VoteOnContentResult{}, err
	}
	if err := ValidateContentID("content_id", args.ContentID); err != nil {
		return VoteOnContentResult{}, apierrors.NewInvalidArgument("Cannot vote: " + err.Error())
	}

	fullname := base.PostFullname(args.ContentID)
	if target == TargetComment {
		fullname = base.CommentFullname(args.ContentID)
	}

	if err := c.verify(ctx, action); err != nil {
		return VoteOnContentResult{}, err
	}

	err = c.session.api.Vote(ctx, target, fullname, dir)
	metrics.RecordWriteOperation("vote", err == nil)
	if err != nil {
		c.logger.Error("Failed to vote on Reddit content",
			"content_id", fullname,
			"direction", dir,
			"error", err)
		return VoteOnContentResult{}, apierrors.NewRemoteFailure("Failed to vote on Reddit content", err)
	}

	c.logger.Info("Vote applied", "content_id", fullname, "direction", dir)
	return VoteOnContentResult{
		Text:        "Successfully " + voteVerb(dir) + " the " + string(target),
		ContentID:   fullname,
		ContentType: string(target),
		Direction:   string(dir),
	}, nil
}

// verify runs the live identity probe and maps its failure to
// AuthenticationInvalid.
func (c *Client) verify(ctx context.Context, action string) error {
	if err := c.session.Verify(ctx); err != nil {
		metrics.AuthFailures.WithLabelValues("identity_probe").Inc()
		c.logger.Warn("Reddit identity probe failed", "action", action, "error", err)
		return apierrors.NewAuthenticationInvalid(action, err)
	}
	return nil
}

func voteVerb(d Direction) string {
	switch d {
	case DirectionUp:
		return "upvoted"
	case DirectionDown:
		return "downvoted"
	default:
		return "vote cleared"
	}
}

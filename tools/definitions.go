package tools

// AllTools contains all tool specifications for the Reddit content MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "fetch_reddit_hot_threads",
		Aliases:  []string{AliasPrefix + "fetch_reddit_hot_threads"},
		Method:   "FetchTrendingPosts",
		Title:    "Fetch Hot Threads",
		Category: "read",
		Description: `List the currently hot posts of a subreddit.

USE WHEN: User asks "what's trending on r/X", "show me hot posts in X", "what is X talking about today".

NOT FOR: Reading the comments of one post (use fetch_reddit_post_content).

PARAMETERS:
- community: Subreddit name, with or without r/ (required)
- count: Number of posts (default 10)

RETURNS: One block per post with title, upvotes, comment count, author, content type, content summary and link, separated by blank lines.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fetch_reddit_post_content",
		Aliases:  []string{AliasPrefix + "fetch_reddit_post_content"},
		Method:   "FetchPostDiscussion",
		Title:    "Fetch Post Discussion",
		Category: "read",
		Description: `Read a post and its top comments as an indented reply tree.

USE WHEN: User asks "what are people saying about post X", "summarize the discussion", "show the comments".

NOT FOR: Finding posts (use fetch_reddit_hot_threads first to get ids).

PARAMETERS:
- thread_id: Post id, e.g. 1abc2de or t3_1abc2de (required)
- max_comments: Top-level comments to include (default 20)
- comment_tree_depth: Reply levels, counting top-level comments (default 3)

RETURNS: Post title, score, author, content type and body, then the comment tree sorted by top.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WRITE TOOLS
	// ==========================================================================
	{
		Name:     "create_reddit_post",
		Aliases:  []string{AliasPrefix + "create_reddit_post"},
		Method:   "CreatePost",
		Title:    "Create Post",
		Category: "write",
		Description: `Submit a new text or link post as the authenticated account.

USE WHEN: User says "post this to r/X", "share this link on Reddit", "start a thread about Y".

NOT FOR: Replying to an existing post (use add_reddit_comment).

PARAMETERS:
- subreddit: Target subreddit (required)
- title: Post title (required)
- content_type: 'text' or 'link' (default text)
- content: Body for text posts
- url: Target URL, required for link posts

RETURNS: The URL of the created post.

NOTE: Requires a refresh token from the auth command. Publishes publicly.`,
		OpenWorld: true,
	},
	{
		Name:     "add_reddit_comment",
		Aliases:  []string{AliasPrefix + "add_reddit_comment"},
		Method:   "AddComment",
		Title:    "Add Comment",
		Category: "write",
		Description: `Comment on a post, or reply to a comment, as the authenticated account.

USE WHEN: User says "reply to this post", "answer that comment", "leave a comment saying X".

NOT FOR: Creating a new thread (use create_reddit_post).

PARAMETERS:
- post_id: Post to comment on
- reply_to_comment_id: Comment to reply to (takes precedence over post_id)
- comment_text: Comment body in markdown (required)
One of post_id or reply_to_comment_id is required.

RETURNS: The URL of the created comment.`,
		OpenWorld: true,
	},
	{
		Name:     "vote_on_reddit_content",
		Aliases:  []string{AliasPrefix + "vote_on_reddit_content"},
		Method:   "VoteOnContent",
		Title:    "Vote on Content",
		Category: "write",
		Description: `Upvote, downvote or clear the vote on a post or comment.

USE WHEN: User says "upvote this", "downvote that comment", "remove my vote".

PARAMETERS:
- content_id: Post or comment id (required)
- vote_direction: 'up', 'down' or 'neutral' (required)
- content_type: 'post' or 'comment' (default post)

RETURNS: Confirmation of the applied vote.`,
		Idempotent: true,
		OpenWorld:  true,
	},
}

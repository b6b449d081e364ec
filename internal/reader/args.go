package reader

// FetchTrendingPostsArgs contains parameters for the hot listing of a community
type FetchTrendingPostsArgs struct {
	Community string `json:"community" jsonschema:"Community (subreddit) name, with or without the r/ prefix"`
	Count     *int   `json:"count,omitempty" jsonschema:"Number of posts to return (default 10)"`
}

// FetchTrendingPostsResult is the rendered hot listing
type FetchTrendingPostsResult struct {
	Text      string `json:"text"`
	Community string `json:"community"`
	Count     int    `json:"count"`
	Empty     bool   `json:"empty"`
}

// ToolText returns the text shown to the caller
func (r FetchTrendingPostsResult) ToolText() string { return r.Text }

// FetchPostDiscussionArgs contains parameters for reading a post with its comments
type FetchPostDiscussionArgs struct {
	ThreadID         string `json:"thread_id" jsonschema:"Post id, with or without the t3_ prefix"`
	MaxComments      *int   `json:"max_comments,omitempty" jsonschema:"Maximum number of top-level comments (default 20)"`
	CommentTreeDepth *int   `json:"comment_tree_depth,omitempty" jsonschema:"Levels of replies to include, counting top-level comments (default 3)"`
}

// FetchPostDiscussionResult is the rendered discussion
type FetchPostDiscussionResult struct {
	Text         string `json:"text"`
	ThreadID     string `json:"thread_id"`
	Title        string `json:"title"`
	ContentKind  string `json:"content_kind"`
	CommentCount int    `json:"comment_count"` // top-level comments rendered
	Empty        bool   `json:"empty"`         // no comments
}

// ToolText returns the text shown to the caller
func (r FetchPostDiscussionResult) ToolText() string { return r.Text }

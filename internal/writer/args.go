package writer

// CreatePostArgs contains parameters for a new submission
type CreatePostArgs struct {
	Subreddit   string `json:"subreddit" jsonschema:"Community (subreddit) to post in, without the r/ prefix"`
	Title       string `json:"title" jsonschema:"Post title"`
	ContentType string `json:"content_type,omitempty" jsonschema:"'text' or 'link' (default text)"`
	Content     string `json:"content,omitempty" jsonschema:"Body of a text post"`
	URL         string `json:"url,omitempty" jsonschema:"Target URL, required for link posts"`
}

// CreatePostResult reports the created submission
type CreatePostResult struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	ID        string `json:"id,omitempty"`
	Subreddit string `json:"subreddit"`
	Type      string `json:"type"`
}

// ToolText returns the text shown to the caller
func (r CreatePostResult) ToolText() string { return r.Text }

// AddCommentArgs contains parameters for a comment or a reply
type AddCommentArgs struct {
	PostID           string `json:"post_id,omitempty" jsonschema:"Post to comment on, with or without the t3_ prefix"`
	CommentText      string `json:"comment_text" jsonschema:"Comment body (markdown)"`
	ReplyToCommentID string `json:"reply_to_comment_id,omitempty" jsonschema:"Comment to reply to, with or without the t1_ prefix; takes precedence over post_id"`
}

// AddCommentResult reports the created comment
type AddCommentResult struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	ID       string `json:"id,omitempty"`
	ParentID string `json:"parent_id"`
	IsReply  bool   `json:"is_reply"`
}

// ToolText returns the text shown to the caller
func (r AddCommentResult) ToolText() string { return r.Text }

// VoteOnContentArgs contains parameters for a vote
type VoteOnContentArgs struct {
	ContentID     string `json:"content_id" jsonschema:"Post or comment id, with or without the t3_/t1_ prefix"`
	VoteDirection string `json:"vote_direction" jsonschema:"'up', 'down' or 'neutral' (clears an existing vote)"`
	ContentType   string `json:"content_type,omitempty" jsonschema:"'post' or 'comment' (default post)"`
}

// VoteOnContentResult reports the applied vote
type VoteOnContentResult struct {
	Text        string `json:"text"`
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	Direction   string `json:"direction"`
}

// ToolText returns the text shown to the caller
func (r VoteOnContentResult) ToolText() string { return r.Text }

// Package content normalizes Reddit posts and comment trees into the plain
// text rendering returned by the read tools.
package content

// Kind is the content shape reported for a post.
type Kind string

const (
	KindExternalLink Kind = "external_link"
	KindTextPost     Kind = "text_post"
	KindImageGallery Kind = "image_gallery"
	KindOther        Kind = "other"
)

// Post is a read-only snapshot of a submission at fetch time.
type Post struct {
	ID           string
	Title        string
	Score        int
	Author       string // empty when deleted or anonymous
	Permalink    string // path, e.g. /r/golang/comments/abc123/title/
	CommentCount int
	Content      Content
}

// Content is the closed set of post variants. Only the types in this
// package implement it.
type Content interface {
	isContent()
}

// LinkContent is a post pointing at an external URL.
type LinkContent struct {
	URL string
}

// TextContent is a self post. Body may be empty.
type TextContent struct {
	Body string
}

// GalleryContent is a multi-image gallery post.
type GalleryContent struct {
	GalleryURL string
}

// OtherContent covers every shape the normalizer does not recognise
// (videos, polls, crossposts, future additions).
type OtherContent struct{}

func (LinkContent) isContent()    {}
func (TextContent) isContent()    {}
func (GalleryContent) isContent() {}
func (OtherContent) isContent()   {}

// Comment is a single comment without its replies.
type Comment struct {
	Author string // empty when deleted or anonymous
	Body   string
	Score  int
}

// CommentNode is a comment and its replies, in the order the platform returned them.
type CommentNode struct {
	Comment
	Children []CommentNode
}

package content

import (
	"fmt"
	"strings"
)

const (
	// BaseURL is prefixed to permalink paths.
	BaseURL = "https://reddit.com"

	// NoTextPlaceholder replaces an empty self-post body.
	NoTextPlaceholder = "No text content available"

	// NoCommentsMessage is rendered when a discussion has no comments.
	NoCommentsMessage = "No comments found in this discussion."

	indentUnit   = "  "
	cornerMarker = "└─ "
)

// Classify reports the content shape of p.
func Classify(p Post) Kind {
	switch p.Content.(type) {
	case LinkContent:
		return KindExternalLink
	case TextContent:
		return KindTextPost
	case GalleryContent:
		return KindImageGallery
	default:
		return KindOther
	}
}

// ExtractBody returns a human-readable summary of p's content.
// The second result is false for posts classified as other.
func ExtractBody(p Post) (string, bool) {
	switch c := p.Content.(type) {
	case LinkContent:
		return "External link: " + PermalinkURL(p.Permalink), true
	case TextContent:
		if c.Body == "" {
			return NoTextPlaceholder, true
		}
		return c.Body, true
	case GalleryContent:
		return "Gallery with multiple images: " + c.GalleryURL, true
	default:
		return "", false
	}
}

// PermalinkURL turns a permalink path into an absolute URL.
// Absolute URLs are returned unchanged.
func PermalinkURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return BaseURL + path
}

// RenderCommentTree renders node and its replies as indented text.
// Depth is bounded by whatever the fetch produced.
func RenderCommentTree(node CommentNode, level int) string {
	var sb strings.Builder
	renderComment(&sb, node, level)
	return sb.String()
}

func renderComment(sb *strings.Builder, node CommentNode, level int) {
	prefix := ""
	bodyIndent := ""
	if level > 0 {
		prefix = strings.Repeat(indentUnit, level) + cornerMarker
		bodyIndent = indentUnit
	}

	fmt.Fprintf(sb, "%sComment by %s (votes: %d)\n", prefix, displayName(node.Author, "[anonymous]"), node.Score)
	fmt.Fprintf(sb, "%s%s%s\n", prefix, bodyIndent, node.Body)

	for _, child := range node.Children {
		renderComment(sb, child, level+1)
	}
}

// FormatPostBlock renders a post for the trending listing.
func FormatPostBlock(p Post) string {
	lines := []string{
		"## " + p.Title,
		fmt.Sprintf("* Upvotes: %d", p.Score),
		fmt.Sprintf("* Comments: %d", p.CommentCount),
		"* Author: u/" + displayName(p.Author, "[deleted]"),
		"* Type: " + string(Classify(p)),
		"* Content: " + bodyOrNone(p),
		"* Link: " + PermalinkURL(p.Permalink),
		"---",
	}
	return strings.Join(lines, "\n")
}

// FormatPostBlocks joins post blocks with blank lines.
func FormatPostBlocks(posts []Post) string {
	blocks := make([]string, 0, len(posts))
	for _, p := range posts {
		blocks = append(blocks, FormatPostBlock(p))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatDiscussion renders a post header followed by its top-level comments.
func FormatDiscussion(p Post, comments []CommentNode) string {
	lines := []string{
		"# Discussion Analysis: " + p.Title,
		fmt.Sprintf("* Upvotes: %d", p.Score),
		"* Author: u/" + displayName(p.Author, "[deleted]"),
		"* Content type: " + string(Classify(p)),
		"* Content: " + bodyOrNone(p),
		"\n## Discussion Overview",
	}

	if len(comments) == 0 {
		lines = append(lines, NoCommentsMessage)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "### Top Comments:")
	for _, node := range comments {
		lines = append(lines, RenderCommentTree(node, 0))
	}
	return strings.Join(lines, "\n")
}

func bodyOrNone(p Post) string {
	if body, ok := ExtractBody(p); ok {
		return body
	}
	return "n/a"
}

func displayName(name, missing string) string {
	if name == "" {
		return missing
	}
	return name
}

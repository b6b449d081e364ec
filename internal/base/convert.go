package base

import (
	"strings"

	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/content"
)

// PostFromReddit converts an API post into the normalized model.
func PostFromReddit(p *reddit.Post) content.Post {
	if p == nil {
		return content.Post{Content: content.OtherContent{}}
	}
	return content.Post{
		ID:           p.ID,
		Title:        p.Title,
		Score:        p.Score,
		Author:       authorName(p.Author),
		Permalink:    p.Permalink,
		CommentCount: p.NumberOfComments,
		Content:      contentFromReddit(p),
	}
}

func contentFromReddit(p *reddit.Post) content.Content {
	switch {
	case p.IsSelfPost:
		return content.TextContent{Body: p.Body}
	case isGalleryURL(p.URL):
		return content.GalleryContent{GalleryURL: p.URL}
	case p.URL != "":
		return content.LinkContent{URL: p.URL}
	default:
		return content.OtherContent{}
	}
}

func isGalleryURL(u string) bool {
	return strings.Contains(u, "reddit.com/gallery/")
}

// CommentTreeFromReddit converts up to limit top-level comments and their
// replies, keeping at most depth levels. depth values below 1 keep only the
// top level.
func CommentTreeFromReddit(comments []*reddit.Comment, limit, depth int) []content.CommentNode {
	if limit <= 0 {
		return nil
	}
	if depth < 1 {
		depth = 1
	}

	nodes := make([]content.CommentNode, 0, min(limit, len(comments)))
	for _, c := range comments {
		if len(nodes) == limit {
			break
		}
		if c == nil {
			continue
		}
		nodes = append(nodes, commentNode(c, depth))
	}
	return nodes
}

func commentNode(c *reddit.Comment, depth int) content.CommentNode {
	node := content.CommentNode{
		Comment: content.Comment{
			Author: authorName(c.Author),
			Body:   c.Body,
			Score:  c.Score,
		},
	}
	if depth <= 1 {
		return node
	}
	for _, r := range c.Replies.Comments {
		if r == nil {
			continue
		}
		node.Children = append(node.Children, commentNode(r, depth-1))
	}
	return node
}

// authorName maps the platform's deleted marker to an empty author.
func authorName(name string) string {
	if name == "[deleted]" {
		return ""
	}
	return name
}

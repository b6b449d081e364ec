package writer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
)

// PostType is the kind of submission to create.
type PostType string

const (
	PostTypeText PostType = "text"
	PostTypeLink PostType = "link"
)

// Target is the kind of content a vote applies to.
type Target string

const (
	TargetPost    Target = "post"
	TargetComment Target = "comment"
)

// Direction is a vote direction.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// ParsePostType accepts "text" or "link" in any case; empty means text.
func ParsePostType(s string) (PostType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return PostTypeText, nil
	case "link":
		return PostTypeLink, nil
	}
	return "", apierrors.NewUnsupportedArgument("content type", s, "'text' and 'link'")
}

// ParseTarget accepts "post" or "comment" in any case; empty means post.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "post":
		return TargetPost, nil
	case "comment":
		return TargetComment, nil
	}
	return "", apierrors.NewUnsupportedArgument("content type", s, "'post' and 'comment'")
}

// ParseDirection accepts "up", "down" or "neutral" in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionUp, DirectionDown, DirectionNeutral:
		return d, nil
	}
	return "", apierrors.NewUnsupportedArgument("vote direction", s, "'up', 'down', and 'neutral'")
}

// ValidateLinkURL requires an absolute http(s) URL.
func ValidateLinkURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("URL must be an absolute http or https URL, got %q", raw)
	}
	return nil
}

// ValidateContentID requires a base36 id, with or without its kind prefix.
func ValidateContentID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if !base.ValidThingID(id) {
		return fmt.Errorf("invalid %s %q", field, id)
	}
	return nil
}

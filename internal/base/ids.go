package base

import (
	"regexp"
	"strings"
)

// Thing kind prefixes used in fullnames
const (
	CommentPrefix = "t1_"
	PostPrefix    = "t3_"
)

var thingIDPattern = regexp.MustCompile(`^[a-z0-9]{1,13}$`)

// StripKind removes a t1_/t3_ prefix and surrounding whitespace from id.
func StripKind(id string) string {
	id = strings.TrimSpace(id)
	lower := strings.ToLower(id)
	for _, p := range []string{CommentPrefix, PostPrefix} {
		if strings.HasPrefix(lower, p) {
			return id[len(p):]
		}
	}
	return id
}

// ValidThingID reports whether id, with any kind prefix removed, is a base36 id.
func ValidThingID(id string) bool {
	return thingIDPattern.MatchString(strings.ToLower(StripKind(id)))
}

// PostFullname returns the t3_ fullname of a post id.
func PostFullname(id string) string {
	return PostPrefix + strings.ToLower(StripKind(id))
}

// CommentFullname returns the t1_ fullname of a comment id.
func CommentFullname(id string) string {
	return CommentPrefix + strings.ToLower(StripKind(id))
}

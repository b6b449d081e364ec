package base

import (
	"fmt"
	"regexp"
	"strings"
)

var subredditPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// NormalizeSubreddit trims whitespace, a leading / or /r/ and a trailing slash.
func NormalizeSubreddit(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "/")
	if len(name) > 2 && strings.EqualFold(name[:2], "r/") {
		name = name[2:]
	}
	return strings.TrimSuffix(name, "/")
}

// ValidateSubreddit checks a single normalized subreddit name.
func ValidateSubreddit(name string) error {
	if name == "" {
		return fmt.Errorf("subreddit is required")
	}
	if !subredditPattern.MatchString(name) {
		return fmt.Errorf("invalid subreddit %q: use 2-21 letters, digits or underscores", name)
	}
	return nil
}

// ValidateSubredditList checks a normalized listing target, which may join
// several subreddits with '+'.
func ValidateSubredditList(names string) error {
	if names == "" {
		return fmt.Errorf("subreddit is required")
	}
	for _, name := range strings.Split(names, "+") {
		if !subredditPattern.MatchString(name) {
			return fmt.Errorf("invalid subreddit %q: use 2-21 letters, digits or underscores", names)
		}
	}
	return nil
}

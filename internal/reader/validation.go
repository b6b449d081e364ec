package reader

import (
	"fmt"
	"strings"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
)

// ValidateThreadID validates a post id, with or without its t3_ prefix.
func ValidateThreadID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("thread_id is required")
	}
	if !base.ValidThingID(id) {
		return fmt.Errorf("invalid thread_id %q: expected a post id such as 1abc2de", id)
	}
	return nil
}

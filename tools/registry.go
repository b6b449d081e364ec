// Package tools provides a metadata-driven registry for MCP tool definitions.
// It reduces boilerplate in main.go by defining tools declaratively and
// using type-safe handlers to register them.
package tools

// AliasPrefix is prepended to every tool name to form its alias.
const AliasPrefix = "mcp_reddit_content_api_"

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a reader or writer client method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "fetch_reddit_hot_threads")
	Name string

	// Aliases are additional names the same tool answers to
	Aliases []string

	// Method is the client method name (e.g., "FetchTrendingPosts")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (read, write)
	Category string

	// ReadOnly indicates the tool doesn't modify Reddit state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// Names returns the primary name followed by the aliases.
func (s ToolSpec) Names() []string {
	return append([]string{s.Name}, s.Aliases...)
}

// ToolsByCategory returns the specs in category, in table order.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// AllToolNames returns every registered name, aliases included.
func AllToolNames() []string {
	var names []string
	for _, spec := range AllTools {
		names = append(names, spec.Names()...)
	}
	return names
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}

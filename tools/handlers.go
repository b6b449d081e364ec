package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"

	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/reader"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/writer"
	"github.com/olgasafonova/reddit-content-mcp-server/metrics"
	"github.com/olgasafonova/reddit-content-mcp-server/tracing"
)

// textResult is implemented by every tool result. ToolText is the plain text
// returned in the content channel; the struct itself is the structured output.
type textResult interface {
	ToolText() string
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	reader *reader.Client
	writer *writer.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(readerClient *reader.Client, writerClient *writer.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		reader: readerClient,
		writer: writerClient,
		logger: logger,
	}
}

// RegisterAll registers all tools, aliases included, with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	count := 0
	for _, spec := range AllTools {
		for _, name := range spec.Names() {
			if h.registerByName(server, name, spec) {
				count++
			}
		}
	}
	h.logger.Info("Registered all tools", "tools", len(AllTools), "names", count)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, name string, spec ToolSpec) bool {
	tool := h.buildTool(name, spec)

	switch spec.Method {
	// Read tools
	case "FetchTrendingPosts":
		register(h, server, tool, spec, h.reader.FetchTrendingPostsMCP)
	case "FetchPostDiscussion":
		register(h, server, tool, spec, h.reader.FetchPostDiscussionMCP)

	// Write tools
	case "CreatePost":
		register(h, server, tool, spec, h.writer.CreatePostMCP)
	case "AddComment":
		register(h, server, tool, spec, h.writer.AddCommentMCP)
	case "VoteOnContent":
		register(h, server, tool, spec, h.writer.VoteOnContentMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec under the given name.
func (h *HandlerRegistry) buildTool(name string, spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else if !spec.ReadOnly {
		annotations.DestructiveHint = ptr(false)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
// A *apierrors.ToolError becomes an error result whose text is the message and
// whose _meta carries the error code.
func register[Args any, Result textResult](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	name := tool.Name
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, out Result, err error) {
		defer h.recoverPanic(name, &err)

		ctx, span := tracing.StartToolSpan(ctx, name, spec.Category, spec.ReadOnly)
		defer span.End()

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			tracing.FinishSpan(span, err)
			metrics.RecordRequest(name, duration, false)

			var zero Result
			var toolErr *apierrors.ToolError
			if errors.As(err, &toolErr) {
				metrics.RecordToolError(name, string(toolErr.Code))
				h.logger.Warn("Tool failed",
					"tool", name,
					"code", toolErr.Code,
					"error", err)
				return toolErrorResult(toolErr), zero, nil
			}
			return nil, zero, fmt.Errorf("%s failed: %w", name, err)
		}

		tracing.FinishSpan(span, nil)
		metrics.RecordRequest(name, duration, true)

		text := result.ToolText()
		metrics.ContentSize.WithLabelValues(name).Observe(float64(len(text)))
		h.logExecution(name, spec, args, result)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, result, nil
	})
}

// toolErrorResult renders a ToolError for the caller.
func toolErrorResult(te *apierrors.ToolError) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: te.Message}},
		Meta:    mcp.Meta{"error_code": string(te.Code)},
	}
}

// recoverPanic recovers from panics in tool handlers and reports them as errors.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(name string, spec ToolSpec, args, result any) {
	attrs := []any{"tool", name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case reader.FetchTrendingPostsArgs:
		attrs = append(attrs, "community", a.Community)
	case reader.FetchPostDiscussionArgs:
		attrs = append(attrs, "thread_id", a.ThreadID)
	case writer.CreatePostArgs:
		attrs = append(attrs, "subreddit", a.Subreddit, "content_type", a.ContentType)
	case writer.AddCommentArgs:
		attrs = append(attrs, "post_id", a.PostID, "reply_to_comment_id", a.ReplyToCommentID)
	case writer.VoteOnContentArgs:
		attrs = append(attrs, "content_id", a.ContentID, "direction", a.VoteDirection)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case reader.FetchTrendingPostsResult:
		attrs = append(attrs, "posts", r.Count, "empty", r.Empty)
	case reader.FetchPostDiscussionResult:
		attrs = append(attrs, "comments", r.CommentCount, "content_kind", r.ContentKind)
	case writer.CreatePostResult:
		attrs = append(attrs, "url", r.URL)
	case writer.AddCommentResult:
		attrs = append(attrs, "url", r.URL, "is_reply", r.IsReply)
	}

	h.logger.Info("Tool executed", attrs...)
}

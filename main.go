// Reddit Content MCP Server - A Model Context Protocol server for Reddit
// Provides tools for reading hot posts and discussions, and for posting,
// commenting and voting as an authenticated account
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/authflow"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/config"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/infra"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/reader"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/writer"
	"github.com/olgasafonova/reddit-content-mcp-server/metrics"
	"github.com/olgasafonova/reddit-content-mcp-server/tools"
	"github.com/olgasafonova/reddit-content-mcp-server/tracing"
)

const (
	ServerName    = "reddit-content-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Reddit Content MCP Server reads and writes Reddit content.

Read tools (work without credentials):
- fetch_reddit_hot_threads: Hot posts of a subreddit
- fetch_reddit_post_content: A post with its top comment tree

Write tools (need an authenticated session):
- create_reddit_post: Submit a text or link post
- add_reddit_comment: Comment on a post or reply to a comment
- vote_on_reddit_content: Upvote, downvote or clear a vote

Every tool is also available with the mcp_reddit_content_api_ prefix.

Configure via environment variables or .env:
- REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET: Application credentials
- REDDIT_REFRESH_TOKEN: Enables the write tools (run the auth command)
- REDDIT_USER_AGENT: User agent sent to Reddit`

// recoverPanic logs a panic instead of crashing the process
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

type rootOptions struct {
	envFile  string
	logLevel string
}

type serveOptions struct {
	httpAddr    string
	rateLimit   int
	maxBodySize int64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command. Without a subcommand it serves over stdio.
func newRootCmd() *cobra.Command {
	ro := &rootOptions{}
	so := &serveOptions{}

	rootCmd := &cobra.Command{
		Use:          ServerName,
		Short:        "MCP server for reading and writing Reddit content",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ro, so)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ro.envFile, "env-file", config.DefaultEnvFile, "Path of the .env file")
	rootCmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	addServeFlags(rootCmd, so)

	rootCmd.AddCommand(newServeCmd(ro))
	rootCmd.AddCommand(newAuthCmd(ro))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func addServeFlags(cmd *cobra.Command, so *serveOptions) {
	cmd.Flags().StringVar(&so.httpAddr, "http", "", "Serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	cmd.Flags().IntVar(&so.rateLimit, "rate-limit", DefaultHTTPRateLimit, "HTTP requests per minute per client IP (0 disables)")
	cmd.Flags().Int64Var(&so.maxBodySize, "max-body-size", DefaultMaxBodySize, "Maximum HTTP request body in bytes")
}

// newServeCmd creates the serve command
func newServeCmd(ro *rootOptions) *cobra.Command {
	so := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio unless --http is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ro, so)
		},
	}
	addServeFlags(cmd, so)
	return cmd
}

// newAuthCmd creates the auth command
func newAuthCmd(ro *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Reddit account and store its refresh token",
		Long: `Runs the OAuth authorization code flow once. Open the printed URL,
approve the application, and the refresh token is written to the .env file.
Only the REDDIT_REFRESH_TOKEN line is replaced or appended; other entries
and comments are left as they are.
The redirect URL registered for the application must match REDDIT_REDIRECT_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(ro.logLevel)
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(ro.envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			_, err = authflow.Run(ctx, authflow.Options{
				Config:  cfg,
				EnvFile: ro.envFile,
				Logger:  logger,
				Out:     cmd.OutOrStdout(),
			})
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for the browser redirect")
	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ServerName, ServerVersion)
		},
	}
}

// newLogger logs to stderr; stdout carries the MCP stdio protocol.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

func runServe(ctx context.Context, ro *rootOptions, so *serveOptions) error {
	logger, err := newLogger(ro.logLevel)
	if err != nil {
		return err
	}
	defer recoverPanic(logger, "serve")

	// Load configuration from environment
	cfg, err := config.LoadConfig(ro.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tcfg := tracing.DefaultConfig()
	tcfg.ServiceName = ServerName
	tcfg.ServiceVersion = ServerVersion
	shutdownTracing, err := tracing.Setup(ctx, tcfg)
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	server, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting Reddit Content MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", transportName(so.httpAddr),
	)

	if so.httpAddr != "" {
		return runHTTP(ctx, server, so, logger)
	}
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func transportName(httpAddr string) string {
	if httpAddr != "" {
		return "http"
	}
	return "stdio"
}

// newServer builds the clients, opens the write session and registers every tool.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mcp.Server, error) {
	// Read and write clients share one outbound throttle
	throttle := infra.NewThrottle(cfg.RequestsPerMinute, infra.MaxConcurrentRequests)

	readBase, err := base.NewReadClient(ctx, cfg, base.WithLogger(logger), base.WithThrottle(throttle))
	if err != nil {
		return nil, err
	}
	readerClient := reader.NewClient(reader.NewRedditSource(readBase), reader.WithLogger(logger))

	session := openSession(ctx, cfg, logger, throttle)
	writerClient := writer.NewClient(session, writer.WithLogger(logger))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(readerClient, writerClient, logger).RegisterAll(server)
	return server, nil
}

// openSession establishes the write session once. A nil session leaves the
// write tools registered but refusing every call.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, throttle *infra.Throttle) *writer.Session {
	if !cfg.HasWriteCredentials() {
		logger.Warn("Write tools disabled: credentials not configured",
			"missing", strings.Join(cfg.MissingWriteCredentials(), ","))
		return nil
	}

	writeBase, err := base.NewWriteClient(ctx, cfg, base.WithLogger(logger), base.WithThrottle(throttle))
	if err != nil {
		logger.Warn("Write tools disabled", "error", err)
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	session, err := writer.OpenSession(probeCtx, writer.NewRedditAPI(writeBase))
	if err != nil {
		metrics.AuthFailures.WithLabelValues("startup_probe").Inc()
		logger.Warn("Write tools disabled: Reddit authentication failed", "error", err)
		return nil
	}

	logger.Info("Reddit write session established", "user", session.Username())
	return session
}

// runHTTP serves the MCP endpoint with metrics and health checks until ctx is done.
func runHTTP(ctx context.Context, server *mcp.Server, so *serveOptions, logger *slog.Logger) error {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
	secured := NewSecurityMiddleware(mcpHandler, logger, SecurityConfig{
		RateLimit:   so.rateLimit,
		MaxBodySize: so.maxBodySize,
	})
	defer secured.Close()

	mux := http.NewServeMux()
	mux.Handle("/mcp", secured)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)

	srv := &http.Server{
		Addr:              so.httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP transport listening", "addr", so.httpAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP transport")
		return srv.Shutdown(shutdownCtx)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    ServerName,
		"version": ServerVersion,
	})
}

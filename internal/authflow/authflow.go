// Package authflow runs the one-time OAuth authorization code flow that
// obtains a refresh token for the write tools and stores it in the .env file.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/config"
)

// RefreshTokenKey is the .env key the obtained token is stored under.
const RefreshTokenKey = "REDDIT_REFRESH_TOKEN"

// Options configures a Run.
type Options struct {
	Config   *config.Config
	EnvFile  string
	Scopes   []string      // defaults to base.WriteScopes
	Endpoint base.Endpoint // defaults to base.DefaultEndpoint
	Logger   *slog.Logger

	// Out receives the instructions shown to the user.
	Out io.Writer

	// Listener serves the callback. When nil, Run listens on the host and
	// port of Config.RedirectURL.
	Listener net.Listener

	// OnAuthURL is called with the authorization URL once the callback
	// server is ready. The default prints it to Out.
	OnAuthURL func(authURL string)

	// HTTPClient is used for the code exchange.
	HTTPClient *http.Client
}

type callbackResult struct {
	code string
	err  error
}

// Run performs the flow and returns the refresh token written to EnvFile.
// It blocks until the browser hits the redirect URL or ctx is done.
func Run(ctx context.Context, opts Options) (string, error) {
	cfg := opts.Config
	if cfg == nil || !cfg.HasAppCredentials() {
		return "", errors.New("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET must be set before running auth")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.Scopes) == 0 {
		opts.Scopes = base.WriteScopes
	}
	if opts.Endpoint == (base.Endpoint{}) {
		opts.Endpoint = base.DefaultEndpoint
	}
	if opts.EnvFile == "" {
		opts.EnvFile = config.DefaultEnvFile
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = base.NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	}

	redirect, err := url.Parse(cfg.RedirectURL)
	if err != nil || redirect.Host == "" {
		return "", fmt.Errorf("invalid redirect URL %q", cfg.RedirectURL)
	}

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", redirect.Host)
		if err != nil {
			return "", fmt.Errorf("failed to listen for the OAuth callback: %w", err)
		}
	}

	state := uuid.NewString()
	results := make(chan callbackResult, 1)
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	mux := http.NewServeMux()
	mux.Handle(path, callbackHandler(state, results))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			opts.Logger.Error("OAuth callback server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	conf := base.OAuthConfig(cfg, opts.Endpoint, opts.Scopes)
	authURL := conf.AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent"))
	if opts.OnAuthURL != nil {
		opts.OnAuthURL(authURL)
	} else {
		fmt.Fprintf(opts.Out, "Open this URL in your browser to authorize the application:\n\n%s\n\nWaiting for the redirect to %s ...\n", authURL, cfg.RedirectURL)
	}

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return "", fmt.Errorf("authorization aborted: %w", ctx.Err())
	}
	if res.err != nil {
		return "", res.err
	}

	tok, err := conf.Exchange(base.WithBaseHTTPClient(ctx, opts.HTTPClient), res.code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return "", errors.New("token response carried no refresh token; request duration=permanent")
	}

	if err := UpdateEnvFile(opts.EnvFile, RefreshTokenKey, tok.RefreshToken); err != nil {
		return "", err
	}
	opts.Logger.Info("Refresh token stored", "file", opts.EnvFile)
	fmt.Fprintf(opts.Out, "Refresh token saved to %s. Restart the server to enable the write tools.\n", opts.EnvFile)
	return tok.RefreshToken, nil
}

// callbackHandler receives the authorization redirect. It checks state,
// reports a denied authorization, and sends the outcome to results once.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = errors.New("state mismatch in OAuth callback")
			http.Error(w, "State mismatch. Restart the auth command.", http.StatusBadRequest)
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
			http.Error(w, "Authorization failed: "+q.Get("error"), http.StatusBadRequest)
		case q.Get("code") == "":
			res.err = errors.New("OAuth callback carried no code")
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
		default:
			res.code = q.Get("code")
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}

// UpdateEnvFile sets key in the .env file at path. Only lines assigning key
// are rewritten; comments, ordering and the quoting of other entries are
// kept. The file is created with mode 0600 if it does not exist.
func UpdateEnvFile(path, key, value string) error {
	assignment, err := godotenv.Marshal(map[string]string{key: value})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	mode := fs.FileMode(0o600)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}
	found := false
	for i, line := range lines {
		if assignsKey(line, key) {
			lines[i] = assignment
			found = true
		}
	}
	if !found {
		lines = append(lines, assignment)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// assignsKey reports whether line is a KEY=value or KEY: value entry for key,
// optionally prefixed with export.
func assignsKey(line, key string) bool {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "export ")
	line = strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(line, key) {
		return false
	}
	rest := strings.TrimLeft(line[len(key):], " \t")
	return strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, ":")
}

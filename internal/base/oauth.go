package base

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/config"
)

// Endpoint holds the OAuth URLs of the platform.
type Endpoint struct {
	AuthURL  string
	TokenURL string
}

// DefaultEndpoint is Reddit's OAuth endpoint
var DefaultEndpoint = Endpoint{
	AuthURL:  "https://www.reddit.com/api/v1/authorize",
	TokenURL: "https://www.reddit.com/api/v1/access_token",
}

// WriteScopes are the scopes requested by the auth command.
var WriteScopes = []string{"identity", "submit", "edit", "vote", "read"}

// OAuthConfig builds the authorization-code configuration for cfg.
func OAuthConfig(cfg *config.Config, endpoint Endpoint, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   endpoint.AuthURL,
			TokenURL:  endpoint.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// WithBaseHTTPClient makes oauth2 use hc for token requests.
func WithBaseHTTPClient(ctx context.Context, hc *http.Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, hc)
}

// appOnlyHTTPClient authenticates as the application with no user context.
func appOnlyHTTPClient(ctx context.Context, cfg *config.Config, hc *http.Client, endpoint Endpoint) *http.Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     endpoint.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	client := cc.Client(WithBaseHTTPClient(ctx, hc))
	client.Timeout = hc.Timeout
	return client
}

// refreshTokenHTTPClient authenticates as the user who granted the refresh token.
func refreshTokenHTTPClient(ctx context.Context, cfg *config.Config, hc *http.Client, endpoint Endpoint) *http.Client {
	conf := OAuthConfig(cfg, endpoint, WriteScopes)
	client := conf.Client(WithBaseHTTPClient(ctx, hc), &oauth2.Token{RefreshToken: cfg.RefreshToken})
	client.Timeout = hc.Timeout
	return client
}

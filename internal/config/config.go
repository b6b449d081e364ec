// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultUserAgent         = "reddit-content-mcp-server/1.0 (github.com/olgasafonova/reddit-content-mcp-server)"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerMinute = 60
	DefaultRedirectURL       = "http://localhost:8080"
	DefaultEnvFile           = ".env"
)

// Config holds Reddit connection settings
type Config struct {
	// ClientID and ClientSecret identify the registered Reddit application
	ClientID     string
	ClientSecret string

	// RefreshToken enables the write tools (obtained with the auth command)
	RefreshToken string

	// UserAgent identifies the client to Reddit
	UserAgent string

	// Timeout for API requests
	Timeout time.Duration

	// RequestsPerMinute throttles outbound Reddit calls
	RequestsPerMinute int

	// RedirectURL is the OAuth callback registered for the application
	RedirectURL string
}

// LoadConfig reads envFile (if it exists) into the process environment and
// builds a Config from it. Variables already set in the environment win.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	timeout := DefaultTimeout
	if t := os.Getenv("REDDIT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			timeout = d
		}
	}

	rpm := DefaultRequestsPerMinute
	if r := os.Getenv("REDDIT_REQUESTS_PER_MINUTE"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n > 0 {
			rpm = n
		}
	}

	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	redirectURL := os.Getenv("REDDIT_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = DefaultRedirectURL
	}

	return &Config{
		ClientID:          os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret:      os.Getenv("REDDIT_CLIENT_SECRET"),
		RefreshToken:      os.Getenv("REDDIT_REFRESH_TOKEN"),
		UserAgent:         userAgent,
		Timeout:           timeout,
		RequestsPerMinute: rpm,
		RedirectURL:       redirectURL,
	}, nil
}

// HasAppCredentials returns true if the application id and secret are configured
func (c *Config) HasAppCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// HasWriteCredentials returns true if everything the write session needs is configured
func (c *Config) HasWriteCredentials() bool {
	return c.HasAppCredentials() && c.RefreshToken != ""
}

// MissingWriteCredentials names the variables that keep the write tools disabled.
func (c *Config) MissingWriteCredentials() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "REDDIT_REFRESH_TOKEN")
	}
	return missing
}

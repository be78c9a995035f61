// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultBaseURL is the default public base URL, used to build the
	// OAuth redirect URI.
	DefaultBaseURL = "http://127.0.0.1:8080"

	configDirName = "inner-library"
)

// Errors for missing required environment variables.
var (
	ErrMissingDatabaseURL   = errors.New("missing DATABASE_URL environment variable")
	ErrMissingIdentity      = errors.New("missing IDENTITY_CLIENT_ID or IDENTITY_CLIENT_SECRET environment variable")
	ErrMissingIdentityURLs  = errors.New("missing IDENTITY_AUTH_URL, IDENTITY_TOKEN_URL or IDENTITY_USERINFO_URL environment variable")
	ErrMissingWebhookSecret = errors.New("missing IDENTITY_WEBHOOK_SECRET environment variable")
)

// Config holds the full service configuration.
type Config struct {
	Addr    string
	BaseURL string

	DatabaseURL string

	IdentityClientID     string
	IdentityClientSecret string
	IdentityAuthURL      string
	IdentityTokenURL     string
	IdentityUserinfoURL  string
	WebhookSecret        string

	// DataDir holds device-local state (prompt history, recent moods).
	DataDir string
}

// Load reads configuration from the environment.
// Missing required values abort startup with a sentinel error.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:                 envOr("ADDR", DefaultAddr),
		BaseURL:              envOr("BASE_URL", DefaultBaseURL),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		IdentityClientID:     os.Getenv("IDENTITY_CLIENT_ID"),
		IdentityClientSecret: os.Getenv("IDENTITY_CLIENT_SECRET"),
		IdentityAuthURL:      os.Getenv("IDENTITY_AUTH_URL"),
		IdentityTokenURL:     os.Getenv("IDENTITY_TOKEN_URL"),
		IdentityUserinfoURL:  os.Getenv("IDENTITY_USERINFO_URL"),
		WebhookSecret:        os.Getenv("IDENTITY_WEBHOOK_SECRET"),
		DataDir:              os.Getenv("DATA_DIR"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.IdentityClientID == "" || cfg.IdentityClientSecret == "" {
		return nil, ErrMissingIdentity
	}
	if cfg.IdentityAuthURL == "" || cfg.IdentityTokenURL == "" || cfg.IdentityUserinfoURL == "" {
		return nil, ErrMissingIdentityURLs
	}
	if cfg.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	if cfg.DataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("getting user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(configDir, configDirName)
	}

	return cfg, nil
}

// envOr returns the environment variable value or a fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/library")
	t.Setenv("IDENTITY_CLIENT_ID", "client-id")
	t.Setenv("IDENTITY_CLIENT_SECRET", "client-secret")
	t.Setenv("IDENTITY_AUTH_URL", "https://id.example.com/authorize")
	t.Setenv("IDENTITY_TOKEN_URL", "https://id.example.com/token")
	t.Setenv("IDENTITY_USERINFO_URL", "https://id.example.com/userinfo")
	t.Setenv("IDENTITY_WEBHOOK_SECRET", "whsec_c2VjcmV0")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("DATA_DIR", "/tmp/inner-library-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default %q", cfg.Addr, DefaultAddr)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/library" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DataDir != "/tmp/inner-library-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADDR", "0.0.0.0:9000")
	t.Setenv("BASE_URL", "https://journal.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.BaseURL != "https://journal.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  error
	}{
		{name: "database url", unset: "DATABASE_URL", want: ErrMissingDatabaseURL},
		{name: "client id", unset: "IDENTITY_CLIENT_ID", want: ErrMissingIdentity},
		{name: "client secret", unset: "IDENTITY_CLIENT_SECRET", want: ErrMissingIdentity},
		{name: "auth url", unset: "IDENTITY_AUTH_URL", want: ErrMissingIdentityURLs},
		{name: "token url", unset: "IDENTITY_TOKEN_URL", want: ErrMissingIdentityURLs},
		{name: "userinfo url", unset: "IDENTITY_USERINFO_URL", want: ErrMissingIdentityURLs},
		{name: "webhook secret", unset: "IDENTITY_WEBHOOK_SECRET", want: ErrMissingWebhookSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

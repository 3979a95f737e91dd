package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://localhost/welly?sslmode=disable")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AppPort != "8080" {
		t.Fatalf("want default port 8080, got %q", cfg.AppPort)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("want default ttl 1h, got %v", cfg.SessionTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("want default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.GoogleEnabled() {
		t.Fatal("google must be disabled without client configuration")
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/welly?sslmode=disable")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("want error for missing session secret")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9999")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REDIRECT_URL", "http://localhost/oauth/callback/google")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AppPort != "9999" {
		t.Fatalf("unexpected port %q", cfg.AppPort)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.SessionTTL)
	}
	if !cfg.GoogleEnabled() {
		t.Fatal("google must be enabled with full client configuration")
	}
}

package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.AdminEmail != "admin@gmail.com" {
		t.Errorf("AdminEmail = %q, want %q", cfg.AdminEmail, "admin@gmail.com")
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 8*time.Hour)
	}
	if cfg.JWTSecret == "" {
		t.Error("JWTSecret should be generated when unset")
	}
	if cfg.APIBaseURL != "http://127.0.0.1:8080" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://127.0.0.1:8080")
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
	if cfg.CompletionSchedule != "" {
		t.Errorf("CompletionSchedule = %q, want empty", cfg.CompletionSchedule)
	}
}

func TestParseRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://localhost")
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/reservas")
	t.Setenv("PORT", "9090")
	t.Setenv("RESTAURANT_TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("API_BASE_URL", "http://api.test/")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), ":9090")
	}
	if cfg.Location().String() != "America/Argentina/Buenos_Aires" {
		t.Errorf("Location() = %v", cfg.Location())
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
	if cfg.APIBaseURL != "http://api.test" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "s3cret")
	}
}

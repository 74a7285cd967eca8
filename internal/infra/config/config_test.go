package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("SECURITY_SALT", "salt")
	t.Setenv("REGISTRATION_KEY", "key")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://menu.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://menu.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.VerificationTokenTTL != 180*time.Second {
		t.Fatalf("VerificationTokenTTL want 180s, got %v", cfg.VerificationTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://menu.example.com" {
		t.Fatalf("bad origins %v", cfg.AllowedOrigins)
	}
	if cfg.PublicBaseURL != "https://menu.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.PublicBaseURL)
	}
	if cfg.MailTransport != MailLog || cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("unexpected defaults: %q %q", cfg.MailTransport, cfg.DatabaseDriver)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// всё, кроме REGISTRATION_KEY
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("SECRET_KEY", "s")
	t.Setenv("SECURITY_SALT", "salt")
	t.Setenv("REGISTRATION_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing REGISTRATION_KEY, got nil")
	}
}

func TestLoad_SMTPNeedsCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("MAIL_USERNAME", "")
	t.Setenv("MAIL_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for smtp without credentials")
	}
}

func TestLoad_KafkaBrokers(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_TRANSPORT", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("want 2 brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoad_BadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("VERIFICATION_TOKEN_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero TTL")
	}
}

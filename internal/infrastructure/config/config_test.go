package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}), zerolog.Nop())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.Session.Secret != DevSecret {
		t.Fatalf("expected development secret fallback")
	}
	if cfg.Session.MaxAge != 168*time.Hour {
		t.Fatalf("unexpected session max age: %s", cfg.Session.MaxAge)
	}
	if cfg.Redis.ArticleTTL != 30*time.Second {
		t.Fatalf("unexpected article ttl: %s", cfg.Redis.ArticleTTL)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	secret := strings.Repeat("s", 40)
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "8080",
		"SECRET_KEY":         secret,
		"DATABASE_URL":       "postgres://u:p@db:5432/news",
		"DB_ACQUIRE_TIMEOUT": "2s",
		"MAIL_DOMAIN":        "mg.example.com",
		"AUDIT_WORKERS":      "8",
	}), zerolog.Nop())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Session.Secret != secret {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Postgres.DSN != "postgres://u:p@db:5432/news" || cfg.Postgres.AcquireTimeout != 2*time.Second {
		t.Fatalf("unexpected postgres config: %+v", cfg.Postgres)
	}
	if cfg.Mail.Domain != "mg.example.com" || cfg.AuditWorkers != 8 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}), zerolog.Nop())
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY": "too-short",
	}), zerolog.Nop())
	if !errors.Is(err, ErrShortSecret) {
		t.Fatalf("expected ErrShortSecret, got %v", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_MAX_AGE": "forever",
	}), zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

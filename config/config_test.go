package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("DEFAULT_CURRENCY", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg := Load()
	if cfg.DataBackend != "postgres" {
		t.Fatalf("expected postgres backend, got %q", cfg.DataBackend)
	}
	if cfg.DefaultCurrency != "MAD" {
		t.Fatalf("expected MAD, got %q", cfg.DefaultCurrency)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("DATA_BACKEND", "Memory")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()
	if cfg.DataBackend != "memory" {
		t.Fatalf("expected memory backend, got %q", cfg.DataBackend)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Fatalf("expected EUR, got %q", cfg.DefaultCurrency)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("expected fallback of 10 conns, got %d", cfg.DBMaxConns)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Fatalf("expected 15m access ttl, got %v", cfg.AccessTTL)
	}
	if cfg.CookieSecure {
		t.Fatalf("expected cookie secure fallback false")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "ledger", DBSSLMode: "require"}
	want := "postgres://u:p@db:5433/ledger?sslmode=require"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	if got, want := cfg.CORSOrigins(), []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := cfg.ESAddrs(); len(got) != 0 {
		t.Fatalf("expected no addresses, got %v", got)
	}
}

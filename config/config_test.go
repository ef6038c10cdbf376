package config

import (
	"errors"
	"testing"
	"time"
)

func lookup(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"DB_URL":     "postgres://localhost/blog",
		"SECRET_KEY": "s3cret",
	}))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected driver: %s", cfg.DBDriver)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"SERVER_PORT":          "3000",
		"DB_DRIVER":            "SQLite",
		"SECRET_KEY":           "s3cret",
		"TOKEN_TTL":            "30m",
		"LOG_JSON":             "true",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,",
		"DB_MAX_OPEN_CONNS":    "not-a-number",
	}))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.DBDriver != "sqlite" || cfg.DBURL != "blog.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TokenTTL != 30*time.Minute || !cfg.LogJSON {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Fatalf("expected fallback pool size, got %d", cfg.DBMaxOpenConns)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing db url", vars: map[string]string{"SECRET_KEY": "x"}},
		{name: "missing secret", vars: map[string]string{"DB_URL": "postgres://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(lookup(tt.vars)); !errors.Is(err, ErrMissingKey) {
				t.Fatalf("expected ErrMissingKey, got %v", err)
			}
		})
	}
}

func TestFromEnvDevelopmentSecret(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{"APP_ENV": "development", "DB_DRIVER": "sqlite"}))
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.SecretKey != devSecretKey {
		t.Fatalf("expected dev secret, got %q", cfg.SecretKey)
	}
}

func TestFromEnvUnknownDriver(t *testing.T) {
	if _, err := FromEnv(lookup(map[string]string{"DB_DRIVER": "mysql", "SECRET_KEY": "x"})); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

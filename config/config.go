package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecretKey = "dev-secret-key"

var ErrMissingKey = errors.New("required environment variable not set")

type Config struct {
	Env             string
	Addr            string
	DBDriver        string
	DBURL           string
	DBMaxOpenConns  int
	SecretKey       string
	TokenTTL        time.Duration
	LogLevel        string
	LogJSON         bool
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load reads the process environment, after merging a .env file if one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests need not touch the process env.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env(getenv)
	cfg := Config{
		Env:             e.str("APP_ENV", "production"),
		Addr:            ":" + e.str("SERVER_PORT", "8080"),
		DBDriver:        strings.ToLower(e.str("DB_DRIVER", "postgres")),
		DBURL:           e.str("DB_URL", ""),
		DBMaxOpenConns:  e.int("DB_MAX_OPEN_CONNS", 25),
		SecretKey:       e.str("SECRET_KEY", ""),
		TokenTTL:        e.duration("TOKEN_TTL", time.Hour),
		LogLevel:        e.str("LOG_LEVEL", "info"),
		LogJSON:         e.bool("LOG_JSON", false),
		AllowedOrigins:  e.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL: %w", ErrMissingKey)
		}
	case "sqlite":
		if cfg.DBURL == "" {
			cfg.DBURL = "blog.db"
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.SecretKey == "" {
		if !cfg.IsDevelopment() {
			return Config{}, fmt.Errorf("SECRET_KEY: %w", ErrMissingKey)
		}
		cfg.SecretKey = devSecretKey
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

type env func(string) string

func (e env) str(key, def string) string {
	if v := strings.TrimSpace(e(key)); v != "" {
		return v
	}
	return def
}

func (e env) int(key string, def int) int {
	if v := e(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (e env) bool(key string, def bool) bool {
	if v := e(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (e env) duration(key string, def time.Duration) time.Duration {
	if v := e(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (e env) list(key string, def []string) []string {
	v := e(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "3001"
	defaultAuthMode      = "jwt"
	defaultJWTAccessTTL  = "1h"
	defaultUploadRoot    = "./uploads/products"
	defaultUploadTimeout = "30s"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4"
	defaultShutdownGrace = "10s"
	defaultReadTimeout   = "60s"
	defaultWriteTimeout  = "60s"
)

// Config is the process-wide runtime configuration, loaded once at startup.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	AuthMode      string // jwt | basic | remote
	AuthVerifyURL string // remote mode only
	UploadRoot    string
	UploadTimeout time.Duration
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	ShutdownGrace time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET have no fallback: running without them is a startup failure,
// not a silently insecure default.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.UploadRoot = getEnv("UPLOAD_ROOT", defaultUploadRoot)

	cfg.AuthMode = strings.ToLower(getEnv("AUTH_MODE", defaultAuthMode))
	switch cfg.AuthMode {
	case "jwt", "basic", "remote":
	default:
		return nil, fmt.Errorf("AUTH_MODE must be jwt, basic or remote, got %q", cfg.AuthMode)
	}

	cfg.AuthVerifyURL = strings.TrimSpace(os.Getenv("AUTH_VERIFY_URL"))
	if cfg.AuthMode == "remote" && cfg.AuthVerifyURL == "" {
		return nil, fmt.Errorf("AUTH_VERIFY_URL is required when AUTH_MODE=remote")
	}

	cfg.OpenAIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", defaultOpenAIBaseURL)
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", defaultOpenAIModel)

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.UploadTimeout, err = parseDurationEnv("UPLOAD_TIMEOUT", defaultUploadTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownGrace, err = parseDurationEnv("SHUTDOWN_GRACE", defaultShutdownGrace); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = parseDurationEnv("READ_TIMEOUT", defaultReadTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

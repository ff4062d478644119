package config

import (
	"fmt"
	"log/slog"
	"os"
)

type Config struct {
	DatabaseURL     string
	ListenAddr      string
	JWTSecret       string
	AnthropicAPIKey string
	OTLPEndpoint    string
	Environment     string
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are required; everything else has a sensible default or degrades a feature
// (no ANTHROPIC_API_KEY disables natural-language search, no OTLP_ENDPOINT
// disables trace export).
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OTLPEndpoint:    os.Getenv("OTLP_ENDPOINT"),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AnthropicAPIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set, natural-language search disabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with
// .env support for local development.
type Config struct {
	Port      string
	Synthetic bool   // use the deterministic extractor instead of live lookups
	DNSServer string // upstream resolver, host:port
	LogJSON   bool
	LogLevel  slog.Level
}

// LoadConfig reads the environment. Missing variables fall back to
// production defaults; a missing .env file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      envOr("PORT", "8080"),
		Synthetic: envBool("SYNTHETIC_MODE"),
		DNSServer: envOr("DNS_SERVER", "8.8.8.8:53"),
		LogJSON:   envBool("LOG_JSON"),
		LogLevel:  slog.LevelInfo,
	}
	if envBool("LOG_DEBUG") {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only suitable for local development. A deployment must
// set JWT_SECRET.
const DefaultJWTSecret = "troca-por-uma-frase-bem-longa-e-secreta"

// Config holds all runtime settings for the server.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// DBPath is the SQLite database file path. Parent directories are
	// created on startup.
	DBPath string

	// JWTSecret signs bearer tokens (HS256).
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration

	// StaticPath is the directory the SPA shell is served from.
	StaticPath string
}

// Load reads configuration from a .env file (if present) and the process
// environment, falling back to local-development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on process environment")
	}

	return &Config{
		Port:       getEnv("PORT", "3000"),
		DBPath:     getEnv("DB_PATH", "./data/poupanca.db"),
		JWTSecret:  getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 12*time.Hour),
		StaticPath: getEnv("STATIC_PATH", "./web/static"),
	}
}

// Validate checks the configuration and returns a combined error when any
// setting is unusable.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create database directory %q: %v", dir, err))
			}
		}
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT secret cannot be empty")
	}

	if c.TokenTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

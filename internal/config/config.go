// Package config loads the process configuration from environment
// variables once at startup. The resulting Config is treated as
// immutable by everything downstream.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all externally supplied settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret is the symmetric token signing key. Required.
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration

	// CORSAllowedOrigins is the browser origin allow-list; ["*"] allows any.
	CORSAllowedOrigins []string

	// Argon2 cost parameters for password hashing.
	Argon2Memory      uint32 // KiB
	Argon2Iterations  uint32
	Argon2Parallelism uint8
}

// Load reads the configuration from the environment.
// It fails only when a required value is missing; malformed optional
// values fall back to their defaults with a warning.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	// Parallelism must fit in argon2's uint8 lane count.
	parallelism := getInt("ARGON2_PARALLELISM", 1)
	if parallelism > 255 {
		slog.Warn("Invalid integer, using default", "key", "ARGON2_PARALLELISM", "value", parallelism, "default", 1)
		parallelism = 1
	}

	cfg := &Config{
		Addr:               ":" + getEnv("PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "./data/moneybook.db"),
		JWTSecret:          secret,
		TokenTTL:           getDuration("TOKEN_TTL", 24*time.Hour),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Argon2Memory:       uint32(getInt("ARGON2_MEMORY", 64*1024)),
		Argon2Iterations:   uint32(getInt("ARGON2_ITERATIONS", 3)),
		Argon2Parallelism:  uint8(parallelism),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("Invalid integer, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

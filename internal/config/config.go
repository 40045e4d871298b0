// Package config loads the fintrack server and notifier settings from the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	// HTTP Server
	Port       string
	StaticPath string

	// Storage
	DataBackend  string
	SQLiteDBPath string
	DatabaseURL  string

	// Redis read cache, disabled when empty
	RedisURL string
	CacheTTL time.Duration

	// AMQP event publishing, disabled when empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration
	AuthRequired  bool

	// Domain
	StrictPercentages bool

	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		StaticPath: getEnv("STATIC_PATH", ""),

		DataBackend:  getEnv("DATA_BACKEND", BackendSQLite),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getEnvDuration("CACHE_TTL", 60*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "fintrack_events"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		AuthRequired:  getEnvBool("AUTH_REQUIRED", false),

		StrictPercentages: getEnvBool("STRICT_PERCENTAGES", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		} else if err := checkScheme("database", c.DatabaseURL, "postgres", "postgresql"); err != "" {
			errors = append(errors, err)
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, []string{BackendSQLite, BackendPostgres}))
	}

	// Validate Redis URL if provided
	if c.RedisURL != "" {
		if err := checkScheme("Redis", c.RedisURL, "redis", "rediss"); err != "" {
			errors = append(errors, err)
		}
		if c.CacheTTL < time.Second {
			errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if err := checkScheme("AMQP", c.AMQPURL, "amqp", "amqps"); err != "" {
			errors = append(errors, err)
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate auth
	if c.AuthRequired && c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	if c.TokenDuration < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token duration %v: must be at least 1 minute", c.TokenDuration))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func checkScheme(name, raw string, schemes ...string) string {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid %s URL '%s': %v", name, raw, err)
	}
	for _, s := range schemes {
		if parsedURL.Scheme == s {
			return ""
		}
	}
	return fmt.Sprintf("invalid %s URL scheme '%s': must be one of %v", name, parsedURL.Scheme, schemes)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

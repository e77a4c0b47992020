// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ServerID is the snowflake node id of this instance (0-1023).
	ServerID int64

	// DBDriver is the database driver to use ("mysql" or "postgres").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitEnabled indicates whether per-application rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per application.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per application.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// SaltKeeperURI is a gocloud.dev/secrets keeper URI used to seal application
	// salts at rest. Empty stores salts as-is.
	SaltKeeperURI string
	// SaltLength is the number of random bytes in a freshly rolled salt.
	SaltLength int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),
		ServerID:   int64(env.GetInt("SERVER_ID", 0)),

		// Database configuration
		DBDriver: env.GetString("DB_DRIVER", "mysql"),
		DBConnectionString: env.GetString(
			"DB_CONNECTION_STRING",
			"user:password@tcp(localhost:3306)/tregmine?parseTime=true",
		),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "tregmine"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Application salts
		SaltKeeperURI: env.GetString("SALT_KEEPER_URI", ""),
		SaltLength:    env.GetInt("SALT_LENGTH", 32),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv walks up from the working directory and loads the first .env found.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

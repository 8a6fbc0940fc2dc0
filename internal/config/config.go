// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8082".
	Port string `mapstructure:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `mapstructure:"database_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects the slog handler: "json" (default) or "text".
	LogFormat string `mapstructure:"log_format"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `mapstructure:"-"`

	// RequestTimeout bounds how long a single request may hold a database
	// connection. Defaults to 10s.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	// DBMaxConns and DBMinConns size the connection pool.
	DBMaxConns int32 `mapstructure:"db_max_conns"`
	DBMinConns int32 `mapstructure:"db_min_conns"`

	// NATSURL enables change events when set. Empty disables publishing.
	NATSURL string `mapstructure:"nats_url"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()

	// Every key needs a default (even an empty one) so Unmarshal sees it.
	v.SetDefault("port", "8082")
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_min_conns", 0)
	v.SetDefault("nats_url", "")

	// PORT → port, DATABASE_URL → database_url. Empty variables count as unset.
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}
	cfg.CORSOrigins = splitCSV(v.GetString("cors_origins"))

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabaseURL reads only DATABASE_URL, for tools such as cmd/migrate
// that need nothing else from the environment.
func LoadDatabaseURL() (string, error) {
	v := viper.New()
	v.AutomaticEnv()

	dsn := v.GetString("database_url")
	if dsn == "" {
		return "", fmt.Errorf("required environment variables not set: DATABASE_URL")
	}
	return dsn, nil
}

// Validate checks that the decoded values are usable.
func (c Config) Validate() error {
	var errs []string

	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be 1-65535, got %q", c.Port))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if len(c.CORSOrigins) == 0 {
		errs = append(errs, "CORS_ORIGINS must name at least one origin")
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, "MAX_BODY_BYTES must be positive")
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.DBMinConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

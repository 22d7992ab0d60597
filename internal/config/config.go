// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `envconfig:"PORT" default:"8080"`

	// AuthToken is the static bearer token required on all API routes.
	AuthToken string `envconfig:"AUTH_TOKEN" default:"onlyvim2024"`

	// NotificationServiceURL is the base URL of the external delivery service.
	NotificationServiceURL string `envconfig:"NOTIFICATION_SERVICE_URL" default:"http://notification-service:5001"`

	// SendTimeout is the per-channel timeout for outbound delivery calls.
	SendTimeout time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"`

	// DataDir is the root data directory. Defaults to ~/.notifyd.
	DataDir string `envconfig:"NOTIFYD_DATA_DIR"`

	// SeedFile is an optional YAML file with the initial user records.
	// The built-in seed set is used when empty.
	SeedFile string `envconfig:"SEED_FILE"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogRetentionDays is how long delivery log entries are kept before pruning.
	LogRetentionDays int `envconfig:"LOG_RETENTION_DAYS" default:"30"`

	// SMTPHost enables direct SMTP delivery for the email channel when set.
	// SMS always goes through the HTTP relay.
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	// SMTPEncryption is the SMTP transport security: "none", "starttls" or "ssl_tls".
	SMTPEncryption string `envconfig:"SMTP_ENCRYPTION" default:"starttls"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.notifyd if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".notifyd")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory (~/.notifyd/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the delivery log database file.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "notifyd.db")
}

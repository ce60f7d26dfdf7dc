/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, port, CORS allowed origins, the message history cap
and the inbound frame size limit.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultPort is the listen port used when PORT is not set.
	DefaultPort = 3000

	// EnvDevelopment is the default running environment.
	EnvDevelopment = "development"

	// DefaultMaxFrameBytes is the largest inbound WebSocket frame accepted when
	// MAX_FRAME_BYTES is not set (100 MiB).
	DefaultMaxFrameBytes = 100 << 20
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// AllowedOrigins restricts CORS and WebSocket origins. Empty means any origin.
	AllowedOrigins []string

	// HistoryLimit caps the number of retained chat messages. Zero keeps every message.
	HistoryLimit int

	// MaxFrameBytes is the largest inbound WebSocket frame a client may send.
	MaxFrameBytes int64
}

// IsDevelopment reports whether the application runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}

	// Port
	port, err := intFromEnv("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the valid range (1-65535)", port)
	}
	cfg.Port = port

	// AllowedOrigins
	cfg.AllowedOrigins = []string{}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	// HistoryLimit
	limit, err := intFromEnv("HISTORY_LIMIT", 0)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must not be negative, got %d", limit)
	}
	cfg.HistoryLimit = limit

	// MaxFrameBytes
	maxFrame, err := intFromEnv("MAX_FRAME_BYTES", DefaultMaxFrameBytes)
	if err != nil {
		return nil, err
	}
	if maxFrame < 1 {
		return nil, fmt.Errorf("MAX_FRAME_BYTES must be positive, got %d", maxFrame)
	}
	cfg.MaxFrameBytes = int64(maxFrame)

	return cfg, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

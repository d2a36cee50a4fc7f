package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/mutablefs"
	"github.com/platinummonkey/pkglint/pkg/observability"
	"github.com/platinummonkey/pkglint/pkg/storage"
)

// Config holds the process configuration read from the environment. Lint rules are
// configured separately in pkglint.yaml.
type Config struct {
	// Path of the lint config; empty means search the workspace root
	LintConfigPath string

	// Storage backing the buffered file system
	Storage storage.Config

	// Session configuration
	Session SessionConfig

	// Watch mode configuration
	Watch WatchConfig

	// Observability configuration
	Observability ObservabilityConfig

	// Disable colored report output
	NoColor bool
}

// SessionConfig holds buffered file system settings
type SessionConfig struct {
	ReadCacheSize int
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	// Debounce groups bursts of manifest events into one run
	Debounce time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel    logrus.Level
	LogFormat   observability.LogFormat
	MetricsFile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	level, err := observability.ParseLevel(getEnv("PKGLINT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := &Config{
		LintConfigPath: getEnv("PKGLINT_CONFIG", ""),
		Storage:        loadStorageConfig(),
		Session: SessionConfig{
			ReadCacheSize: getEnvInt("PKGLINT_READ_CACHE_SIZE", mutablefs.DefaultReadCacheSize),
		},
		Watch: WatchConfig{
			Debounce: getEnvDuration("PKGLINT_WATCH_DEBOUNCE", 200*time.Millisecond),
		},
		Observability: ObservabilityConfig{
			LogLevel:    level,
			LogFormat:   observability.LogFormat(strings.ToLower(getEnv("PKGLINT_LOG_FORMAT", "text"))),
			MetricsFile: getEnv("PKGLINT_METRICS_FILE", ""),
		},
		NoColor: getEnvBool("PKGLINT_NO_COLOR", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if storageType := getEnv("PKGLINT_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}
	if mode := getEnvFileMode("PKGLINT_FILE_MODE", 0); mode != 0 {
		cfg.FileMode = mode
	}
	if mode := getEnvFileMode("PKGLINT_DIR_MODE", 0); mode != 0 {
		cfg.DirMode = mode
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "filesystem", "memory":
	default:
		return fmt.Errorf("invalid storage type: %s (must be filesystem or memory)", c.Storage.Type)
	}

	if c.Session.ReadCacheSize <= 0 {
		return fmt.Errorf("read cache size must be positive, got %d", c.Session.ReadCacheSize)
	}

	switch c.Observability.LogFormat {
	case observability.FormatText, observability.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Observability.LogFormat)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFileMode returns an octal file mode environment variable or a default
func getEnvFileMode(key string, defaultValue os.FileMode) os.FileMode {
	if value := os.Getenv(key); value != "" {
		if mode, err := strconv.ParseUint(value, 8, 32); err == nil {
			return os.FileMode(mode)
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

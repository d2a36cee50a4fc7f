package config

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/mutablefs"
	"github.com/platinummonkey/pkglint/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true string", "true", false, true},
		{"TRUE upper", "TRUE", false, true},
		{"one", "1", false, true},
		{"false string", "false", true, false},
		{"anything else", "yes", true, false},
		{"unset uses default", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_BOOL", tt.envValue)
			}
			if got := getEnvBool("TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := getEnvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getEnvInt() = %v, want 42", got)
	}

	t.Setenv("TEST_INT", "not-a-number")
	if got := getEnvInt("TEST_INT", 1); got != 1 {
		t.Errorf("getEnvInt() with invalid value = %v, want default 1", got)
	}
}

// TestGetEnvFileMode tests the getEnvFileMode helper function
func TestGetEnvFileMode(t *testing.T) {
	t.Setenv("TEST_MODE", "0600")
	if got := getEnvFileMode("TEST_MODE", 0o644); got != 0o600 {
		t.Errorf("getEnvFileMode() = %o, want 600", got)
	}

	t.Setenv("TEST_MODE", "999")
	if got := getEnvFileMode("TEST_MODE", 0o644); got != 0o644 {
		t.Errorf("getEnvFileMode() with invalid octal = %o, want default 644", got)
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1s")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Second {
		t.Errorf("getEnvDuration() = %v, want 1s", got)
	}

	t.Setenv("TEST_DURATION", "soon")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration() with invalid value = %v, want default 1m", got)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PKGLINT_CONFIG", "PKGLINT_STORAGE_TYPE", "PKGLINT_FILE_MODE", "PKGLINT_DIR_MODE",
		"PKGLINT_READ_CACHE_SIZE", "PKGLINT_WATCH_DEBOUNCE", "PKGLINT_LOG_LEVEL",
		"PKGLINT_LOG_FORMAT", "PKGLINT_METRICS_FILE", "PKGLINT_NO_COLOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoadConfig_Defaults tests loading with no environment overrides
func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Storage.Type != "filesystem" {
		t.Errorf("Storage.Type = %s, want filesystem", cfg.Storage.Type)
	}
	if cfg.Session.ReadCacheSize != mutablefs.DefaultReadCacheSize {
		t.Errorf("ReadCacheSize = %d, want %d", cfg.Session.ReadCacheSize, mutablefs.DefaultReadCacheSize)
	}
	if cfg.Observability.LogLevel != logrus.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != observability.FormatText {
		t.Errorf("LogFormat = %v, want text", cfg.Observability.LogFormat)
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", cfg.Watch.Debounce)
	}
	if cfg.LintConfigPath != "" || cfg.Observability.MetricsFile != "" || cfg.NoColor {
		t.Errorf("unexpected non-default values: %+v", cfg)
	}
}

// TestLoadConfig_Overrides tests environment overrides
func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PKGLINT_CONFIG", "ci/pkglint.yaml")
	t.Setenv("PKGLINT_STORAGE_TYPE", "memory")
	t.Setenv("PKGLINT_FILE_MODE", "0600")
	t.Setenv("PKGLINT_READ_CACHE_SIZE", "16")
	t.Setenv("PKGLINT_LOG_LEVEL", "debug")
	t.Setenv("PKGLINT_LOG_FORMAT", "JSON")
	t.Setenv("PKGLINT_METRICS_FILE", "/tmp/pkglint.prom")
	t.Setenv("PKGLINT_NO_COLOR", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.LintConfigPath != "ci/pkglint.yaml" {
		t.Errorf("LintConfigPath = %s", cfg.LintConfigPath)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %s, want memory", cfg.Storage.Type)
	}
	if cfg.Storage.FileMode != 0o600 {
		t.Errorf("FileMode = %o, want 600", cfg.Storage.FileMode)
	}
	if cfg.Session.ReadCacheSize != 16 {
		t.Errorf("ReadCacheSize = %d, want 16", cfg.Session.ReadCacheSize)
	}
	if cfg.Observability.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != observability.FormatJSON {
		t.Errorf("LogFormat = %v, want json", cfg.Observability.LogFormat)
	}
	if cfg.Observability.MetricsFile != "/tmp/pkglint.prom" {
		t.Errorf("MetricsFile = %s", cfg.Observability.MetricsFile)
	}
	if !cfg.NoColor {
		t.Error("expected NoColor")
	}
}

// TestLoadConfig_Invalid tests validation failures
func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown storage", "PKGLINT_STORAGE_TYPE", "s3"},
		{"zero cache", "PKGLINT_READ_CACHE_SIZE", "0"},
		{"bad log level", "PKGLINT_LOG_LEVEL", "loud"},
		{"bad log format", "PKGLINT_LOG_FORMAT", "xml"},
		{"negative debounce", "PKGLINT_WATCH_DEBOUNCE", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

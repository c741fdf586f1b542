package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path,
// layered over the built-in defaults. A missing file is not an error:
// the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// TRACELIGHT_* environment variable overrides. Environment variables always
// take precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies TRACELIGHT_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Scope overrides
	if val := os.Getenv("TRACELIGHT_API_HOST"); val != "" {
		cfg.Scope.APIHost = val
	}
	if val := os.Getenv("TRACELIGHT_ENDPOINT_PATH"); val != "" {
		cfg.Scope.EndpointPath = val
	}
	if val := os.Getenv("TRACELIGHT_ALT_HOST_PATTERN"); val != "" {
		cfg.Scope.AltHostPattern = val
	}
	if val := os.Getenv("TRACELIGHT_INCLUDE_ALL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Scope.IncludeAll = b
		}
	}

	// Output overrides
	if val := os.Getenv("TRACELIGHT_OUT_DIR"); val != "" {
		cfg.Output.BaseDir = val
	}
	if val := os.Getenv("TRACELIGHT_LOG_BASE"); val != "" {
		cfg.Output.LogBaseName = val
	}
	if val := os.Getenv("TRACELIGHT_OPEN_BROWSER"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Output.OpenBrowser = b
		}
	}

	// Report overrides
	if val := os.Getenv("TRACELIGHT_LIVE_REPORT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Report.Live = b
		}
	}
	if val := os.Getenv("TRACELIGHT_REPORT_TITLE"); val != "" {
		cfg.Report.Title = val
	}

	// Storage overrides
	if val := os.Getenv("TRACELIGHT_SQLITE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Storage.SQLiteEnabled = b
		}
	}
	if val := os.Getenv("TRACELIGHT_SQLITE_PATH"); val != "" {
		cfg.Storage.SQLitePath = val
	}

	// Retention overrides
	if val := os.Getenv("TRACELIGHT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.Days = i
		}
	}

	// Logging overrides
	if val := os.Getenv("TRACELIGHT_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("TRACELIGHT_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks a configuration for invalid combinations. Empty values
// are acceptable everywhere (they mean "use the default"); only actively
// wrong values fail validation.
func Validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}

	if cfg.Retention.Days < 0 {
		return fmt.Errorf("retention.days: must not be negative, got %d", cfg.Retention.Days)
	}
	if cfg.Retention.Enabled && cfg.Retention.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
			return fmt.Errorf("retention.schedule: invalid cron expression %q: %w",
				cfg.Retention.Schedule, err)
		}
	}

	return nil
}

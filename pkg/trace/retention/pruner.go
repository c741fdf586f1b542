package retention

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// Dir is the directory tree whose traffic logs are pruned.
	Dir string

	// RetentionDays is the number of days to retain logs.
	// 0 means keep logs forever (no pruning).
	RetentionDays int

	// Schedule is a cron expression for automatic pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	Schedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 30,
		Schedule:      "0 3 * * *",
	}
}

// Pruner deletes traffic logs and reports past the retention period.
type Pruner struct {
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner for the configured directory.
func NewPruner(config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	pruner := &Pruner{
		config: config,
		logger: slog.Default().With("component", "retention"),
	}
	pruner.scheduler = NewScheduler(pruner)
	return pruner
}

// prunable reports whether name is a file this pruner owns. Only the
// recorder's own artifacts are ever deleted; anything else in the output
// tree is left alone.
func prunable(name string) bool {
	return strings.HasSuffix(name, ".jsonl") || strings.HasSuffix(name, ".html") ||
		strings.HasSuffix(name, ".db")
}

// Prune walks the output directory and deletes traffic artifacts whose
// modification time is older than the retention cutoff. Returns the
// number of files deleted.
func (p *Pruner) Prune(now time.Time) (int, error) {
	if p.config.RetentionDays <= 0 {
		p.logger.Debug("retention disabled, nothing to prune")
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, -p.config.RetentionDays)
	var deleted int

	err := filepath.WalkDir(p.config.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !prunable(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.ModTime().Before(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			p.logger.Warn("could not remove aged log file",
				"path", path,
				"error", err,
			)
			return nil
		}
		deleted++
		return nil
	})
	if err != nil {
		return deleted, fmt.Errorf("prune %s: %w", p.config.Dir, err)
	}

	if deleted > 0 {
		p.logger.Info("pruned aged traffic logs",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}
	return deleted, nil
}

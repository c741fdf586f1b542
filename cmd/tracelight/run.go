package main

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"tracelight-hq/tracelight/pkg/cli"
	"tracelight-hq/tracelight/pkg/config"
	"tracelight-hq/tracelight/pkg/launch"
	"tracelight-hq/tracelight/pkg/projdir"
	"tracelight-hq/tracelight/pkg/telemetry/logging"
	"tracelight-hq/tracelight/pkg/trace/retention"
)

var runFlags struct {
	logLevel   string
	includeAll bool
	noOpen     bool
}

var runCmd = &cobra.Command{
	Use:   "run -- <command> [args...]",
	Short: "Run a command with traffic recording configured",
	Long: `Run the given command with the recorder's environment injected.

The wrapped command is expected to embed the tracelight library; the
injected TRACELIGHT_* variables point its recorder at a per-project
directory under the configured output root, so logs from different
working directories never collide.

Examples:
  # Record a tool's API traffic
  tracelight run -- mytool --flag value

  # Record every outbound call, not just the primary endpoint
  tracelight run --include-all -- mytool

  # Skip opening the report when the command exits
  tracelight run --no-open -- mytool`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrapped,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.includeAll, "include-all", false, "record every primary-host call regardless of path")
	runCmd.Flags().BoolVar(&runFlags.noOpen, "no-open", false, "do not open the report in a browser on exit")
}

func runWrapped(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if runFlags.includeAll {
		cfg.Scope.IncludeAll = true
	}
	if runFlags.noOpen {
		cfg.Output.OpenBrowser = false
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewCommandError("run", err)
	}

	logger, err := logging.Setup(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	outDir := filepath.Join(cfg.Output.BaseDir, projdir.Slug(cwd))

	path, err := launch.Resolve(args[0])
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	ctx := cli.SetupSignalHandler()

	var pruner *retention.Pruner
	if cfg.Retention.Enabled {
		pruner = retention.NewPruner(&retention.Config{
			Dir:           cfg.Output.BaseDir,
			RetentionDays: cfg.Retention.Days,
			Schedule:      cfg.Retention.Schedule,
		})
		// Short-lived wrappers may never reach a cron tick, so prune
		// once up front as well.
		if _, err := pruner.Prune(time.Now()); err != nil {
			logger.Warn("startup prune failed", "error", err)
		}
		if err := pruner.Start(ctx); err != nil {
			logger.Warn("retention scheduler not started", "error", err)
			pruner = nil
		}
	}

	logger.Info("launching instrumented command",
		"command", path,
		"out_dir", outDir,
	)

	code, err := launch.Run(ctx, path, args[1:], childEnv(cfg, outDir))
	if pruner != nil {
		pruner.Stop()
	}
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if cfg.Output.OpenBrowser {
		if report := newestFile(outDir, ".html"); report != "" {
			if err := cli.OpenBrowser(report); err != nil {
				logger.Warn("could not open report", "error", err)
			}
		}
	}

	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// childEnv translates the effective configuration into the TRACELIGHT_*
// variables the wrapped process's embedded recorder reads.
func childEnv(cfg *config.Config, outDir string) []string {
	env := []string{
		"TRACELIGHT_OUT_DIR=" + outDir,
		"TRACELIGHT_API_HOST=" + cfg.Scope.APIHost,
		"TRACELIGHT_ENDPOINT_PATH=" + cfg.Scope.EndpointPath,
		"TRACELIGHT_ALT_HOST_PATTERN=" + cfg.Scope.AltHostPattern,
		"TRACELIGHT_INCLUDE_ALL=" + strconv.FormatBool(cfg.Scope.IncludeAll),
		"TRACELIGHT_LOG_BASE=" + cfg.Output.LogBaseName,
		"TRACELIGHT_LIVE_REPORT=" + strconv.FormatBool(cfg.Report.Live),
		"TRACELIGHT_REPORT_TITLE=" + cfg.Report.Title,
		"TRACELIGHT_SQLITE=" + strconv.FormatBool(cfg.Storage.SQLiteEnabled),
		"TRACELIGHT_LOG_LEVEL=" + cfg.Logging.Level,
		"TRACELIGHT_LOG_FORMAT=" + cfg.Logging.Format,
	}
	// Empty means the index defaults to a path next to the log.
	if cfg.Storage.SQLitePath != "" {
		env = append(env, "TRACELIGHT_SQLITE_PATH="+cfg.Storage.SQLitePath)
	}
	return env
}

// newestFile returns the most recently modified file in dir with the
// given extension, or "" when none exists.
func newestFile(dir, ext string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var newest string
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, entry.Name())
			newestMod = info.ModTime()
		}
	}
	return newest
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tracelight-hq/tracelight/pkg/cli"
	"tracelight-hq/tracelight/pkg/config"
	"tracelight-hq/tracelight/pkg/projdir"
	"tracelight-hq/tracelight/pkg/report"
	"tracelight-hq/tracelight/pkg/telemetry/logging"
	"tracelight-hq/tracelight/pkg/trace/sink"
)

var reportFlags struct {
	logPath string
	outPath string
	title   string
	watch   bool
	open    bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an HTML report from a traffic log",
	Long: `Render a self-contained HTML report from a JSONL traffic log.

Without --log, the newest traffic log for the current project directory
is used. With --watch, the report is regenerated whenever the log file
changes, until interrupted.

Examples:
  # Report on the newest log for this project
  tracelight report

  # Report on a specific log, writing next to it
  tracelight report --log .tracelight/myapp-1a2b3c4d/traffic-20260826.jsonl

  # Keep the report current while traffic is still being recorded
  tracelight report --watch --open`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFlags.logPath, "log", "", "traffic log to render (default: newest for this project)")
	reportCmd.Flags().StringVar(&reportFlags.outPath, "out", "", "report output path (default: log path with .html)")
	reportCmd.Flags().StringVar(&reportFlags.title, "title", "", "report title")
	reportCmd.Flags().BoolVar(&reportFlags.watch, "watch", false, "regenerate whenever the log changes")
	reportCmd.Flags().BoolVar(&reportFlags.open, "open", false, "open the report in a browser")
}

func runReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewCommandError("report", err)
	}
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.Setup(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return cli.NewCommandError("report", err)
	}

	logPath := reportFlags.logPath
	if logPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cli.NewCommandError("report", err)
		}
		dir := filepath.Join(cfg.Output.BaseDir, projdir.Slug(cwd))
		logPath = newestFile(dir, ".jsonl")
		if logPath == "" {
			return cli.NewCommandError("report",
				fmt.Errorf("no traffic logs found under %s", dir))
		}
	}

	outPath := reportFlags.outPath
	if outPath == "" {
		outPath = strings.TrimSuffix(logPath, filepath.Ext(logPath)) + ".html"
	}
	title := reportFlags.title
	if title == "" {
		title = cfg.Report.Title
	}

	gen := report.NewGenerator(outPath, title)

	records, err := sink.ReadLog(logPath)
	if err != nil {
		return cli.NewCommandError("report", err)
	}
	if err := gen.Write(records, time.Now()); err != nil {
		return cli.NewCommandError("report", err)
	}
	logger.Info("report written",
		"report", outPath,
		"exchanges", len(records),
	)

	if reportFlags.open {
		if err := cli.OpenBrowser(outPath); err != nil {
			logger.Warn("could not open report", "error", err)
		}
	}

	if reportFlags.watch {
		fmt.Printf("Watching %s (Ctrl+C to stop)\n", logPath)
		ctx := cli.SetupSignalHandler()
		if err := report.Watch(ctx, logPath, gen); err != nil {
			return cli.NewCommandError("report", err)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"tracelight-hq/tracelight/pkg/cli"
	"tracelight-hq/tracelight/pkg/config"
	"tracelight-hq/tracelight/pkg/projdir"
	"tracelight-hq/tracelight/pkg/trace/sink"
)

var queryFlags struct {
	dbPath string
	target string
	status int
	since  string
	limit  int
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the SQLite exchange index",
	Long: `Query the SQLite exchange index written alongside the traffic log.

The index is only present when storage.sqlite_enabled is set; the JSONL
log stays the source of truth either way.

Examples:
  # All recorded exchanges for this project
  tracelight query

  # Rate-limited calls in the last day
  tracelight query --status 429 --since 24h

  # Calls to a specific endpoint
  tracelight query --target /v1/messages --limit 20`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryFlags.dbPath, "db", "", "index database path (default: project index)")
	queryCmd.Flags().StringVar(&queryFlags.target, "target", "", "filter by target substring")
	queryCmd.Flags().IntVar(&queryFlags.status, "status", 0, "filter by exact response status")
	queryCmd.Flags().StringVar(&queryFlags.since, "since", "", "only exchanges completed within this duration (e.g. 24h)")
	queryCmd.Flags().IntVar(&queryFlags.limit, "limit", 0, "maximum number of results")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dbPath := queryFlags.dbPath
	if dbPath == "" {
		cfg, err := config.LoadWithEnvOverrides(cfgFile)
		if err != nil {
			return cli.NewCommandError("query", err)
		}
		cwd, err := os.Getwd()
		if err != nil {
			return cli.NewCommandError("query", err)
		}
		dir := filepath.Join(cfg.Output.BaseDir, projdir.Slug(cwd))
		dbPath = newestFile(dir, ".db")
		if dbPath == "" {
			return cli.NewCommandError("query",
				fmt.Errorf("no exchange index found under %s (is storage.sqlite_enabled set?)", dir))
		}
	}

	q := sink.IndexQuery{
		TargetContains: queryFlags.target,
		Status:         queryFlags.status,
		Limit:          queryFlags.limit,
	}
	if queryFlags.since != "" {
		d, err := time.ParseDuration(queryFlags.since)
		if err != nil {
			return cli.NewCommandError("query", fmt.Errorf("invalid --since duration: %w", err))
		}
		q.Since = time.Now().Add(-d)
	}

	index, err := sink.OpenSQLiteIndex(dbPath)
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	defer index.Close()

	records, err := index.Query(q)
	if err != nil {
		return cli.NewCommandError("query", err)
	}

	for _, rec := range records {
		status := "-"
		if rec.Response != nil {
			status = fmt.Sprintf("%d", rec.Response.Status)
		}
		completed := time.Unix(int64(rec.CompletedAt), 0).UTC().Format(time.RFC3339)
		fmt.Printf("%s  %-4s %-6s %s", completed, rec.Request.Method, status, rec.Request.Target)
		if rec.Note != "" {
			fmt.Printf("  (%s)", rec.Note)
		}
		fmt.Println()
	}
	fmt.Printf("%d exchange(s)\n", len(records))
	return nil
}

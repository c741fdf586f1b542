package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tracelight",
	Short: "Tracelight - LLM API traffic recorder",
	Long: `Tracelight records the outbound HTTP traffic an instrumented process
exchanges with its LLM API provider.

Every in-scope request is paired with its response, credentials are
redacted, and each completed exchange is appended as one JSON line to a
per-run traffic log. A self-contained HTML report is rendered alongside.

For more information, visit: https://github.com/tracelight-hq/tracelight`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tracelight.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

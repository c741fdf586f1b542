package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}

	if cfg.Scope.APIHost != "api.anthropic.com" {
		t.Errorf("Scope.APIHost = %q, want default", cfg.Scope.APIHost)
	}
	if !cfg.Report.Live {
		t.Error("Report.Live should default to true")
	}
	if cfg.Output.BaseDir != ".tracelight" {
		t.Errorf("Output.BaseDir = %q, want default", cfg.Output.BaseDir)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
scope:
  api_host: gateway.internal
  include_all: true
report:
  live: false
retention:
  enabled: true
  days: 7
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scope.APIHost != "gateway.internal" {
		t.Errorf("Scope.APIHost = %q", cfg.Scope.APIHost)
	}
	if !cfg.Scope.IncludeAll {
		t.Error("Scope.IncludeAll should be true")
	}
	if cfg.Report.Live {
		t.Error("explicit report.live=false must stick")
	}
	if cfg.Retention.Days != 7 {
		t.Errorf("Retention.Days = %d, want 7", cfg.Retention.Days)
	}
	// Untouched sections keep defaults.
	if cfg.Scope.EndpointPath != "/v1/messages" {
		t.Errorf("Scope.EndpointPath = %q, want default", cfg.Scope.EndpointPath)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TRACELIGHT_API_HOST", "env-host.example")
	t.Setenv("TRACELIGHT_INCLUDE_ALL", "true")
	t.Setenv("TRACELIGHT_LIVE_REPORT", "false")
	t.Setenv("TRACELIGHT_OUT_DIR", "/tmp/traces")
	t.Setenv("TRACELIGHT_RETENTION_DAYS", "3")

	cfg, err := LoadWithEnvOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides failed: %v", err)
	}

	if cfg.Scope.APIHost != "env-host.example" {
		t.Errorf("Scope.APIHost = %q", cfg.Scope.APIHost)
	}
	if !cfg.Scope.IncludeAll {
		t.Error("Scope.IncludeAll should be overridden to true")
	}
	if cfg.Report.Live {
		t.Error("Report.Live should be overridden to false")
	}
	if cfg.Output.BaseDir != "/tmp/traces" {
		t.Errorf("Output.BaseDir = %q", cfg.Output.BaseDir)
	}
	if cfg.Retention.Days != 3 {
		t.Errorf("Retention.Days = %d, want 3", cfg.Retention.Days)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Errorf("default config must validate: %v", err)
	}

	cfg.Logging.Level = "loud"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for unknown log level")
	}

	cfg = Default()
	cfg.Retention.Days = -1
	if err := Validate(cfg); err == nil {
		t.Error("expected error for negative retention days")
	}

	cfg = Default()
	cfg.Retention.Enabled = true
	cfg.Retention.Schedule = "not a cron expr"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for invalid cron schedule")
	}
}

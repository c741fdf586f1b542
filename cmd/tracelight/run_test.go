package main

import (
	"slices"
	"testing"

	"tracelight-hq/tracelight/pkg/config"
)

func TestChildEnvCarriesEffectiveSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Scope.IncludeAll = true
	cfg.Storage.SQLiteEnabled = true
	cfg.Storage.SQLitePath = "/var/lib/tracelight/index.db"

	env := childEnv(cfg, "/tmp/out/myapp-1a2b3c4d")

	for _, want := range []string{
		"TRACELIGHT_OUT_DIR=/tmp/out/myapp-1a2b3c4d",
		"TRACELIGHT_API_HOST=api.anthropic.com",
		"TRACELIGHT_INCLUDE_ALL=true",
		"TRACELIGHT_SQLITE=true",
		"TRACELIGHT_SQLITE_PATH=/var/lib/tracelight/index.db",
	} {
		if !slices.Contains(env, want) {
			t.Errorf("injected environment missing %q", want)
		}
	}
}

func TestChildEnvOmitsUnsetIndexPath(t *testing.T) {
	cfg := config.Default()

	for _, entry := range childEnv(cfg, "/tmp/out") {
		if entry == "TRACELIGHT_SQLITE_PATH=" {
			t.Error("empty sqlite_path should not be injected")
		}
	}
}

package config

// Default returns a configuration with every field set to its default.
// Loading unmarshals the YAML file over this value, so settings absent from
// the file keep their defaults while explicit false/zero values stick.
func Default() *Config {
	return &Config{
		Scope: ScopeConfig{
			APIHost:        "api.anthropic.com",
			EndpointPath:   "/v1/messages",
			AltHostPattern: "claude.ai",
			IncludeAll:     false,
		},
		Redact: RedactConfig{
			SensitiveHeaders: nil, // empty means the built-in set
		},
		Output: OutputConfig{
			BaseDir:     ".tracelight",
			LogBaseName: "traffic",
			OpenBrowser: false,
		},
		Report: ReportConfig{
			Live:  true,
			Title: "Tracelight Traffic Report",
		},
		Storage: StorageConfig{
			SQLiteEnabled: false,
		},
		Retention: RetentionConfig{
			Enabled:  false,
			Days:     30,
			Schedule: "0 3 * * *",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyDefaults fills empty string and zero numeric fields on a
// programmatically built configuration. Boolean fields are left alone;
// build from Default() when default-true booleans matter.
func ApplyDefaults(cfg *Config) {
	def := Default()

	if cfg.Scope.APIHost == "" {
		cfg.Scope.APIHost = def.Scope.APIHost
	}
	if cfg.Scope.EndpointPath == "" {
		cfg.Scope.EndpointPath = def.Scope.EndpointPath
	}
	if cfg.Output.BaseDir == "" {
		cfg.Output.BaseDir = def.Output.BaseDir
	}
	if cfg.Output.LogBaseName == "" {
		cfg.Output.LogBaseName = def.Output.LogBaseName
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = def.Report.Title
	}
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = def.Retention.Days
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = def.Retention.Schedule
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}

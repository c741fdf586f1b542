package config

// Config is the root configuration structure for tracelight. It covers the
// scope matcher, header redaction, output locations, report generation,
// the optional SQLite index, retention pruning, and logging.
type Config struct {
	// Scope controls which outbound calls are recorded.
	Scope ScopeConfig `yaml:"scope"`

	// Redact controls sensitive-header masking.
	Redact RedactConfig `yaml:"redact"`

	// Output controls where logs and reports are written.
	Output OutputConfig `yaml:"output"`

	// Report controls HTML report generation.
	Report ReportConfig `yaml:"report"`

	// Storage controls the optional SQLite exchange index.
	Storage StorageConfig `yaml:"storage"`

	// Retention controls scheduled pruning of old log and report files.
	Retention RetentionConfig `yaml:"retention"`

	// Logging controls the process logger.
	Logging LoggingConfig `yaml:"logging"`
}

// ScopeConfig controls the recording scope.
type ScopeConfig struct {
	// APIHost is the primary API hostname. A call is a primary-host call
	// when its host contains this value.
	// Default: "api.anthropic.com"
	APIHost string `yaml:"api_host"`

	// EndpointPath restricts primary-host matches to paths containing
	// this value.
	// Default: "/v1/messages"
	EndpointPath string `yaml:"endpoint_path"`

	// AltHostPattern matches an alternate provider host unconditionally.
	// Default: "claude.ai"
	AltHostPattern string `yaml:"alt_host_pattern"`

	// IncludeAll widens scope to any call against the primary or
	// alternate host, dropping the path restriction.
	// Default: false
	IncludeAll bool `yaml:"include_all"`
}

// RedactConfig controls sensitive-header masking.
type RedactConfig struct {
	// SensitiveHeaders is the sensitive-name set, matched by
	// case-insensitive substring against header names. An empty list
	// uses the built-in defaults covering bearer tokens, API keys,
	// cookies, and proxy credentials.
	SensitiveHeaders []string `yaml:"sensitive_headers"`
}

// OutputConfig controls output locations.
type OutputConfig struct {
	// BaseDir is the base output directory. The run command namespaces
	// it per project using a directory-name derived from the working
	// directory.
	// Default: ".tracelight"
	BaseDir string `yaml:"base_dir"`

	// LogBaseName is the base name for log and report files.
	// Default: "traffic"
	LogBaseName string `yaml:"log_base_name"`

	// OpenBrowser opens the generated report in a browser when the
	// traced process exits.
	// Default: false
	OpenBrowser bool `yaml:"open_browser"`
}

// ReportConfig controls HTML report generation.
type ReportConfig struct {
	// Live regenerates the report after each completed exchange.
	// Default: true
	Live bool `yaml:"live"`

	// Title is the display title of the generated report.
	// Default: "Tracelight Traffic Report"
	Title string `yaml:"title"`
}

// StorageConfig controls the optional SQLite exchange index.
type StorageConfig struct {
	// SQLiteEnabled mirrors exchange records into a SQLite index used by
	// the query command.
	// Default: false
	SQLiteEnabled bool `yaml:"sqlite_enabled"`

	// SQLitePath is the index database path. Empty places "index.db"
	// next to the log file.
	SQLitePath string `yaml:"sqlite_path"`
}

// RetentionConfig controls scheduled pruning of old output files.
type RetentionConfig struct {
	// Enabled turns on scheduled pruning.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Days is the retention period. Files older than this are deleted.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is the cron expression for pruning runs.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("text", "json").
	// Default: "text"
	Format string `yaml:"format"`
}

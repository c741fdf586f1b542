package scope

import (
	"net/url"
	"strings"
)

// Config contains configuration for the scope matcher.
type Config struct {
	// PrimaryHost is the primary API hostname. A call's host must contain
	// this value (substring match) to be considered a primary-host call.
	// Default: "api.anthropic.com"
	PrimaryHost string

	// EndpointPath restricts primary-host matches to paths containing this
	// value. Empty means no path restriction.
	// Default: "/v1/messages"
	EndpointPath string

	// AltHostPattern matches an alternate provider host unconditionally,
	// regardless of path. Empty disables the alternate match.
	AltHostPattern string

	// IncludeAll widens scope to any call against the primary or alternate
	// host, dropping the path restriction.
	IncludeAll bool
}

// DefaultConfig returns the default matcher configuration.
func DefaultConfig() Config {
	return Config{
		PrimaryHost:    "api.anthropic.com",
		EndpointPath:   "/v1/messages",
		AltHostPattern: "claude.ai",
	}
}

// Matcher is a pure predicate over outbound call targets. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct {
	primaryHost  string
	endpointPath string
	altPattern   string
	includeAll   bool
}

// NewMatcher creates a matcher from the given configuration. Empty fields
// fall back to defaults, except AltHostPattern which stays disabled when
// unset by the caller of DefaultConfig.
func NewMatcher(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.PrimaryHost == "" {
		cfg.PrimaryHost = def.PrimaryHost
	}
	if cfg.EndpointPath == "" && !cfg.IncludeAll {
		cfg.EndpointPath = def.EndpointPath
	}

	return &Matcher{
		primaryHost:  strings.ToLower(cfg.PrimaryHost),
		endpointPath: cfg.EndpointPath,
		altPattern:   strings.ToLower(cfg.AltHostPattern),
		includeAll:   cfg.IncludeAll,
	}
}

// InScope reports whether the target URL should be recorded. Malformed
// targets are out of scope, never an error.
func (m *Matcher) InScope(target string) bool {
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())

	// Alternate provider hosts match unconditionally.
	if m.altPattern != "" && strings.Contains(host, m.altPattern) {
		return true
	}

	if !strings.Contains(host, m.primaryHost) {
		return false
	}
	if m.includeAll || m.endpointPath == "" {
		return true
	}

	return strings.Contains(u.Path, m.endpointPath)
}

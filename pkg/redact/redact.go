package redact

import "strings"

const (
	// maskMarker replaces the masked middle of a sensitive value.
	maskMarker = "..."

	// maskPlaceholder replaces values too short to mask partially.
	maskPlaceholder = "[REDACTED]"
)

// DefaultSensitivePatterns returns the default sensitive-name set. Matching
// is by case-insensitive substring, so "token" also covers names like
// "x-access-token".
func DefaultSensitivePatterns() []string {
	return []string{
		"authorization",
		"x-api-key",
		"api-key",
		"apikey",
		"cookie",
		"proxy-authorization",
		"x-auth",
		"token",
		"secret",
		"session",
	}
}

// Redactor masks sensitive header values. It is stateless after
// construction and safe for concurrent use.
type Redactor struct {
	patterns []string
}

// New creates a redactor with the given sensitive-name patterns.
// A nil or empty pattern set falls back to DefaultSensitivePatterns.
func New(patterns []string) *Redactor {
	if len(patterns) == 0 {
		patterns = DefaultSensitivePatterns()
	}

	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		lowered = append(lowered, strings.ToLower(p))
	}

	return &Redactor{patterns: lowered}
}

// Redact returns a copy of headers with sensitive values masked. The input
// map is never mutated and no key is removed.
func (r *Redactor) Redact(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}

	out := make(map[string]string, len(headers))
	for name, value := range headers {
		if r.sensitive(name) {
			out[name] = Mask(value)
		} else {
			out[name] = value
		}
	}
	return out
}

// sensitive reports whether the header name matches any configured pattern.
func (r *Redactor) sensitive(name string) bool {
	lowered := strings.ToLower(name)
	for _, p := range r.patterns {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// Mask masks a single sensitive value by length:
//
//	len > 14:   first 10 + marker + last 4
//	5..14:      first 2 + marker + last 2
//	len <= 4:   placeholder
//
// Already-masked values are returned unchanged so that re-redacting a
// header mapping is a no-op.
func Mask(value string) string {
	if masked(value) {
		return value
	}

	switch n := len(value); {
	case n > 14:
		return value[:10] + maskMarker + value[n-4:]
	case n > 4:
		return value[:2] + maskMarker + value[n-2:]
	default:
		return maskPlaceholder
	}
}

// masked reports whether a value already has one of the masked shapes.
func masked(value string) bool {
	if value == maskPlaceholder {
		return true
	}
	switch len(value) {
	case 10 + len(maskMarker) + 4:
		return value[10:10+len(maskMarker)] == maskMarker
	case 2 + len(maskMarker) + 2:
		return value[2:2+len(maskMarker)] == maskMarker
	}
	return false
}

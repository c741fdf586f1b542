package trace

import "time"

// NoteOrphaned marks records synthesized at shutdown for calls that began
// but never received a response.
const NoteOrphaned = "no matching response received"

// RequestSnapshot captures one outbound request at the moment it was issued.
// Headers are stored redacted; Body holds the decoded payload when the
// content type allowed structured parsing, otherwise the raw text.
type RequestSnapshot struct {
	// Timestamp is the request issue time in fractional Unix seconds.
	Timestamp float64 `json:"timestamp"`

	// Method is the HTTP method.
	Method string `json:"method"`

	// Target is the full request URL.
	Target string `json:"target"`

	// Headers are the transport headers, already redacted.
	Headers map[string]string `json:"headers"`

	// Body is the decoded-or-raw request payload. Omitted when the
	// request carried no body.
	Body any `json:"body,omitempty"`
}

// ResponseSnapshot captures the response half of an exchange.
type ResponseSnapshot struct {
	// Timestamp is the response arrival time in fractional Unix seconds.
	Timestamp float64 `json:"timestamp"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Headers are the transport headers, already redacted.
	Headers map[string]string `json:"headers"`

	// Body holds the structured payload when the content type allowed
	// decoding (JSON). Exactly one of Body and BodyRaw is set for
	// non-empty payloads.
	Body any `json:"body,omitempty"`

	// BodyRaw holds the payload as raw text when no structured decode
	// applies (event streams, plain text, unknown content types) or when
	// decoding failed.
	BodyRaw string `json:"body_raw,omitempty"`
}

// ExchangeRecord is the unit of persistence: one request paired with its
// response. Response is nil for orphans drained at shutdown.
type ExchangeRecord struct {
	Request  RequestSnapshot   `json:"request"`
	Response *ResponseSnapshot `json:"response"`

	// CompletedAt is the record finalization time in fractional Unix seconds.
	CompletedAt float64 `json:"completed_at"`

	// Note annotates abnormal records (see NoteOrphaned).
	Note string `json:"note,omitempty"`
}

// UnixSeconds converts a time to fractional Unix seconds, the timestamp
// representation used throughout the log format.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Package intercept wraps an http.RoundTripper to record in-scope outbound
// traffic without altering what the original caller observes.
//
// The Engine is the composition root of the recording pipeline: it owns the
// scope matcher, the correlator, and the sink, and installs the Transport
// decorator onto an http.Client exactly once (re-invoking Install detects
// the prior installation and skips). Calls outside scope pass through with
// no overhead beyond the scope check.
//
// Buffered responses are duplicated in full before the caller sees them;
// event-stream responses are tapped chunk by chunk so the caller's reads
// keep their original data and timing, with the record finalized when the
// stream signals completion.
package intercept

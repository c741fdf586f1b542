// Package codec decodes request and response payloads for logging.
//
// Decoding is best-effort and local: a JSON content type attempts a
// structured parse and falls back to raw text on failure, event-stream and
// plain-text payloads are preserved as raw text (never reassembled into a
// JSON document), form bodies are demoted to a flat name-to-value mapping,
// and unknown or binary content types fall back to raw text capture.
// No decode failure ever propagates to the intercepted call.
package codec

// Package redact masks sensitive header values before persistence.
//
// A header is sensitive when its name contains any configured pattern
// (case-insensitive substring match). Sensitive values are masked by
// length: long values keep the first 10 and last 4 characters around a
// fixed ellipsis marker, mid-length values keep 2 characters on each
// side, and values of 4 characters or fewer are replaced entirely.
//
// Redaction is idempotent and never mutates its input: an already-masked
// value is returned unchanged, and header keys are never dropped.
package redact

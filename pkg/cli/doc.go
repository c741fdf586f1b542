// Package cli provides shared helpers for the tracelight commands:
// signal-aware shutdown contexts, command error wrapping, and opening
// the generated report in a browser.
package cli

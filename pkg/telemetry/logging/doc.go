// Package logging configures the process-wide structured logger.
//
// All components log through log/slog with a component attribute
// (slog.Default().With("component", ...)). This package only selects the
// handler (json or text) and the minimum level from configuration.
package logging

// Package telemetry groups the recorder's observability concerns.
//
//   - logging: structured slog setup shared by the CLI and the engine
//   - metrics: Prometheus counters for recording-pipeline health
//
// Both are best-effort: a telemetry failure never blocks or fails a
// recorded exchange.
package telemetry

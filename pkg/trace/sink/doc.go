// Package sink persists completed exchange records.
//
// The durable log is a JSONL file: one self-describing record per line,
// UTF-8, append-only, each line independently parseable. The sink is the
// only writer to the log file and to the in-memory list of completed pairs
// used for report regeneration.
//
// This is the single boundary where persistence failures are downgraded to
// best-effort: a failed append or report regeneration is logged and
// counted, never propagated to the intercepted call path.
package sink

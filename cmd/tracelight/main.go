// Tracelight records the HTTP traffic an instrumented process exchanges
// with its LLM API, correlates every request with its response, redacts
// credentials, and writes one JSON line per exchange alongside a
// self-contained HTML report.
//
// Usage:
//
//	# Wrap a command so its embedded recorder writes under .tracelight/
//	tracelight run -- mytool --flag
//
//	# Render a report from an existing traffic log
//	tracelight report --log .tracelight/myapp-1a2b3c4d/traffic-20260826-120000.jsonl
//
//	# Keep the report in sync while the log grows
//	tracelight report --log traffic.jsonl --watch
//
//	# Query the SQLite exchange index
//	tracelight query --db .tracelight/myapp-1a2b3c4d/index.db --status 429
//
//	# Show version information
//	tracelight version
package main

func main() {
	Execute()
}

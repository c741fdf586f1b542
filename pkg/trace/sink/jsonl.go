package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"tracelight-hq/tracelight/pkg/trace"
)

// maxLineSize bounds a single log line. Streamed bodies can be large.
const maxLineSize = 64 * 1024 * 1024

// ReadLog parses a JSONL log file into exchange records. Each line is
// independently parseable: malformed lines are skipped with a warning and
// never prevent earlier (or later) lines from being read.
func ReadLog(path string) ([]*trace.ExchangeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []*trace.ExchangeRecord
	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record trace.ExchangeRecord
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			slog.Warn("skipping malformed log line",
				"path", path,
				"line", lineNo,
				"error", err,
			)
			continue
		}
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		// Return what was readable before the failure.
		return records, fmt.Errorf("failed to read log file %q: %w", path, err)
	}

	if skipped > 0 {
		slog.Warn("log contained malformed lines", "path", path, "skipped", skipped)
	}

	return records, nil
}

package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tracelight-hq/tracelight/pkg/trace/sink"
)

// debounceWindow coalesces bursts of write events into one regeneration.
const debounceWindow = 250 * time.Millisecond

// Watch regenerates the report whenever the log file changes, until the
// context is canceled. It renders once on entry so a report exists even if
// the log never changes. Regeneration failures are logged and do not stop
// the watch; the log writer is another process appending concurrently.
func Watch(ctx context.Context, logPath string, gen *Generator) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: appenders may rotate or recreate
	// the log, which would silently detach a file-level watch.
	dir := filepath.Dir(logPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	logger := slog.Default().With("component", "report.watch")
	regenerate := func() {
		records, err := sink.ReadLog(logPath)
		if err != nil {
			logger.Warn("failed to read log", "path", logPath, "error", err)
			return
		}
		if err := gen.Write(records, time.Now()); err != nil {
			logger.Warn("failed to regenerate report", "error", err)
			return
		}
		logger.Debug("report regenerated", "records", len(records))
	}

	regenerate()

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	logAbs, _ := filepath.Abs(logPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != logAbs {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

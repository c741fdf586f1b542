package sink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"tracelight-hq/tracelight/pkg/telemetry/metrics"
	"tracelight-hq/tracelight/pkg/trace"
)

// ReportWriter regenerates the report from the full accumulated record
// list. Regeneration is idempotent and total: every trigger reproduces the
// whole report, not an incremental delta.
type ReportWriter interface {
	Write(records []*trace.ExchangeRecord, generatedAt time.Time) error
}

// Config contains configuration for the sink.
type Config struct {
	// LogPath is the durable JSONL log file. Opened once, append-only.
	LogPath string

	// LiveReport regenerates the report after each completed pair.
	LiveReport bool

	// Report receives regeneration triggers. Nil disables reporting.
	Report ReportWriter

	// Index mirrors records into a SQLite index. Nil disables indexing.
	Index *SQLiteIndex
}

// Sink appends exchange records to the durable log in completion order and
// keeps the in-memory list used for report regeneration.
type Sink struct {
	mu        sync.Mutex
	file      *os.File
	completed []*trace.ExchangeRecord

	live    bool
	report  ReportWriter
	index   *SQLiteIndex
	metrics *metrics.Collector
	logger  *slog.Logger
}

// New opens the durable log for appending and returns the sink. Opening the
// log is the one persistence failure that is not swallowed: without a log
// file there is nothing for the engine to do.
func New(cfg Config, collector *metrics.Collector) (*Sink, error) {
	file, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", cfg.LogPath, err)
	}

	if collector == nil {
		collector = metrics.NewCollector(nil)
	}

	return &Sink{
		file:    file,
		live:    cfg.LiveReport,
		report:  cfg.Report,
		index:   cfg.Index,
		metrics: collector,
		logger:  slog.Default().With("component", "sink"),
	}, nil
}

// Append serializes the record as one line and appends it to the durable
// log. Failures are swallowed and surfaced through the append-failure
// counter; logging must never crash or block the intercepted traffic path.
func (s *Sink) Append(record *trace.ExchangeRecord) {
	s.persist(record, false)
}

// persist writes the record line and, when track is set, adds the record to
// the in-memory completed list within the same critical section, so the
// log order and the list order can never diverge under concurrent
// completions.
func (s *Sink) persist(record *trace.ExchangeRecord, track bool) {
	line, err := json.Marshal(record)
	if err != nil {
		s.metrics.AppendFailures.Inc()
		s.logger.Error("failed to serialize exchange record", "error", err)
		return
	}
	line = append(line, '\n')

	s.mu.Lock()
	_, err = s.file.Write(line)
	if track {
		s.completed = append(s.completed, record)
	}
	s.mu.Unlock()

	if err != nil {
		s.metrics.AppendFailures.Inc()
		s.logger.Error("failed to append exchange record", "error", err)
		return
	}
	s.metrics.RecordsAppended.Inc()

	if s.index != nil {
		if err := s.index.Insert(record); err != nil {
			s.metrics.IndexFailures.Inc()
			s.logger.Error("failed to index exchange record", "error", err)
		}
	}
}

// OnPairCompleted persists a completed pair and, when live reporting is
// enabled, regenerates the report from the full list accumulated so far.
// The in-memory list observes completion order, not request-start order.
func (s *Sink) OnPairCompleted(record *trace.ExchangeRecord) {
	s.persist(record, true)

	if s.live {
		s.RegenerateReport()
	}
}

// AppendOrphan persists an orphan record and includes it in the report
// list without triggering a live regeneration; shutdown regenerates once
// after all orphans are drained.
func (s *Sink) AppendOrphan(record *trace.ExchangeRecord) {
	s.persist(record, true)
}

// RegenerateReport rewrites the report from the full accumulated list.
// Failures are swallowed and counted.
func (s *Sink) RegenerateReport() {
	if s.report == nil {
		return
	}

	records := s.Completed()
	if err := s.report.Write(records, time.Now()); err != nil {
		s.metrics.ReportFailures.Inc()
		s.logger.Error("failed to regenerate report", "error", err)
		return
	}
	s.metrics.ReportRegenerations.Inc()
}

// Completed returns a copy of the completed-pair list in completion order.
func (s *Sink) Completed() []*trace.ExchangeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*trace.ExchangeRecord(nil), s.completed...)
}

// Close closes the durable log and the index, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	err := s.file.Close()
	s.mu.Unlock()

	if s.index != nil {
		if cerr := s.index.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

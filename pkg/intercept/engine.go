package intercept

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tracelight-hq/tracelight/pkg/config"
	"tracelight-hq/tracelight/pkg/redact"
	"tracelight-hq/tracelight/pkg/report"
	"tracelight-hq/tracelight/pkg/scope"
	"tracelight-hq/tracelight/pkg/telemetry/metrics"
	"tracelight-hq/tracelight/pkg/trace/correlate"
	"tracelight-hq/tracelight/pkg/trace/sink"
)

// Engine is one process's recording pipeline: matcher, correlator, and
// sink, wired together and installed onto an HTTP client as a transport
// decorator.
type Engine struct {
	matcher    *scope.Matcher
	correlator *correlate.Correlator
	sink       *sink.Sink
	metrics    *metrics.Collector
	logger     *slog.Logger

	mu        sync.Mutex
	installed bool
	shutdown  bool

	logPath    string
	reportPath string
}

// New assembles an engine from configuration. It creates the output
// directory, opens a fresh timestamped log file, and wires the report
// generator and the optional SQLite index. A failed index open degrades to
// no indexing; a failed log open fails construction.
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		config.ApplyDefaults(cfg)
	}

	dir := cfg.Output.BaseDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	logger := slog.Default().With("component", "intercept")

	stamp := time.Now().Format("2006-01-02-150405")
	base := fmt.Sprintf("%s-%s", cfg.Output.LogBaseName, stamp)
	logPath := filepath.Join(dir, base+".jsonl")
	reportPath := filepath.Join(dir, base+".html")

	var index *sink.SQLiteIndex
	if cfg.Storage.SQLiteEnabled {
		path := cfg.Storage.SQLitePath
		if path == "" {
			path = filepath.Join(dir, "index.db")
		}
		var err error
		index, err = sink.OpenSQLiteIndex(path)
		if err != nil {
			logger.Warn("sqlite index unavailable, continuing without it",
				"path", path,
				"error", err,
			)
			index = nil
		}
	}

	collector := metrics.NewCollector(nil)

	snk, err := sink.New(sink.Config{
		LogPath:    logPath,
		LiveReport: cfg.Report.Live,
		Report:     report.NewGenerator(reportPath, cfg.Report.Title),
		Index:      index,
	}, collector)
	if err != nil {
		return nil, err
	}

	redactor := redact.New(cfg.Redact.SensitiveHeaders)
	matcher := scope.NewMatcher(scope.Config{
		PrimaryHost:    cfg.Scope.APIHost,
		EndpointPath:   cfg.Scope.EndpointPath,
		AltHostPattern: cfg.Scope.AltHostPattern,
		IncludeAll:     cfg.Scope.IncludeAll,
	})

	logger.Info("engine initialized",
		"log", logPath,
		"report", reportPath,
		"api_host", cfg.Scope.APIHost,
		"include_all", cfg.Scope.IncludeAll,
		"live_report", cfg.Report.Live,
	)

	return &Engine{
		matcher:    matcher,
		correlator: correlate.New(redactor, snk),
		sink:       snk,
		metrics:    collector,
		logger:     logger,
		logPath:    logPath,
		reportPath: reportPath,
	}, nil
}

// Install wraps the client's transport with the recording decorator.
// Returns false without wrapping when this engine is already installed or
// the client already carries a recording transport. A nil client installs
// onto http.DefaultClient.
func (e *Engine) Install(client *http.Client) bool {
	if client == nil {
		client = http.DefaultClient
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.installed {
		e.logger.Debug("install skipped, engine already installed")
		return false
	}
	if _, ok := client.Transport.(*Transport); ok {
		e.logger.Debug("install skipped, client already wrapped")
		return false
	}

	client.Transport = e.transport(client.Transport)
	e.installed = true
	return true
}

// Transport returns the recording decorator around base, for hosts that
// inject a transport at their composition root instead of mutating a
// client. A nil base wraps http.DefaultTransport.
func (e *Engine) Transport(base http.RoundTripper) http.RoundTripper {
	return e.transport(base)
}

func (e *Engine) transport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:       base,
		matcher:    e.matcher,
		correlator: e.correlator,
		metrics:    e.metrics,
	}
}

// Shutdown drains every still-pending call into an orphan record, appends
// the orphans to the durable log, regenerates the report one final time,
// and closes the sink. Safe to call once; later calls are no-ops.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return nil
	}
	e.shutdown = true
	e.mu.Unlock()

	orphans := e.correlator.Drain()
	for _, record := range orphans {
		e.sink.AppendOrphan(record)
		e.metrics.OrphansDrained.Inc()
	}

	e.sink.RegenerateReport()
	return e.sink.Close()
}

// LogPath returns the durable log file path.
func (e *Engine) LogPath() string { return e.logPath }

// ReportPath returns the report file path.
func (e *Engine) ReportPath() string { return e.reportPath }

// Metrics returns the engine's metrics collector.
func (e *Engine) Metrics() *metrics.Collector { return e.metrics }

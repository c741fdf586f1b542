package correlate

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tracelight-hq/tracelight/pkg/codec"
	"tracelight-hq/tracelight/pkg/redact"
	"tracelight-hq/tracelight/pkg/trace"
)

// Sink receives completed exchange records in completion order.
type Sink interface {
	OnPairCompleted(record *trace.ExchangeRecord)
}

// RequestCapture is the raw snapshot of an outbound request taken by a shim
// before the underlying call is issued. Headers are captured unredacted;
// redaction is applied at record assembly, never skipped before
// persistence.
type RequestCapture struct {
	Time        time.Time
	Method      string
	Target      string
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// ResponseCapture is the raw snapshot of a response taken by a shim from an
// independent duplicate of the response body.
type ResponseCapture struct {
	Time        time.Time
	Status      int
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// Correlator matches each response to the call that produced it and builds
// the immutable exchange record for the pair. Safe for concurrent use.
type Correlator struct {
	mu      sync.Mutex
	pending map[string]RequestCapture

	redactor *redact.Redactor
	sink     Sink
	logger   *slog.Logger
}

// New creates a correlator that assembles records with the given redactor
// and forwards completed pairs to sink.
func New(redactor *redact.Redactor, sink Sink) *Correlator {
	return &Correlator{
		pending:  make(map[string]RequestCapture),
		redactor: redactor,
		sink:     sink,
		logger:   slog.Default().With("component", "correlate"),
	}
}

// Begin registers an in-flight call and returns its identifier. The
// identifier is registered before Begin returns, so concurrent callers can
// never observe a shared one.
func (c *Correlator) Begin(req RequestCapture) string {
	id := newCallID()

	c.mu.Lock()
	c.pending[id] = req
	c.mu.Unlock()

	c.logger.Debug("call started",
		"call_id", id,
		"method", req.Method,
		"target", req.Target,
	)

	return id
}

// Complete pairs a response with its pending call, assembles the exchange
// record, and forwards it to the sink. Unknown identifiers are a no-op.
func (c *Correlator) Complete(id string, resp ResponseCapture) {
	c.mu.Lock()
	req, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Warn("no pending call for completion", "call_id", id)
		return
	}

	record := c.assemble(req, &resp)
	c.sink.OnPairCompleted(record)

	c.logger.Debug("call completed",
		"call_id", id,
		"status", resp.Status,
		"target", req.Target,
	)
}

// Abort removes a pending call without producing a record. Used when the
// transport fails before any response arrives.
func (c *Correlator) Abort(id string) {
	c.mu.Lock()
	_, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if ok {
		c.logger.Debug("call aborted", "call_id", id)
	}
}

// Drain converts every remaining pending call into an orphan record with a
// nil response and clears the pending set. Invoked exactly once, at process
// shutdown. Orphans are returned in request-start order.
func (c *Correlator) Drain() []*trace.ExchangeRecord {
	c.mu.Lock()
	remaining := make([]RequestCapture, 0, len(c.pending))
	for _, req := range c.pending {
		remaining = append(remaining, req)
	}
	c.pending = make(map[string]RequestCapture)
	c.mu.Unlock()

	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].Time.Before(remaining[j].Time)
	})

	orphans := make([]*trace.ExchangeRecord, 0, len(remaining))
	for _, req := range remaining {
		orphans = append(orphans, c.assemble(req, nil))
	}

	if len(orphans) > 0 {
		c.logger.Warn("drained pending calls as orphans", "count", len(orphans))
	}

	return orphans
}

// PendingCount returns the number of in-flight calls.
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// assemble builds the exchange record for a pair, applying header redaction
// and body decoding to both sides. A nil response produces an orphan.
func (c *Correlator) assemble(req RequestCapture, resp *ResponseCapture) *trace.ExchangeRecord {
	record := &trace.ExchangeRecord{
		Request: trace.RequestSnapshot{
			Timestamp: trace.UnixSeconds(req.Time),
			Method:    req.Method,
			Target:    req.Target,
			Headers:   c.redactor.Redact(req.Headers),
			Body:      codec.DecodeRequestBody(req.Body, req.ContentType),
		},
		CompletedAt: trace.UnixSeconds(time.Now()),
	}

	if resp == nil {
		record.Note = trace.NoteOrphaned
		return record
	}

	decoded := codec.DecodeResponseBody(resp.Body, resp.ContentType)
	record.Response = &trace.ResponseSnapshot{
		Timestamp: trace.UnixSeconds(resp.Time),
		Status:    resp.Status,
		Headers:   c.redactor.Redact(resp.Headers),
		Body:      decoded.Decoded,
		BodyRaw:   decoded.RawText,
	}

	return record
}

// newCallID generates a process-unique call identifier: a time component
// for ordering in logs plus a random component against same-instant
// collisions. Not required to be cryptographically unique.
func newCallID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

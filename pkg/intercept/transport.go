package intercept

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"tracelight-hq/tracelight/pkg/codec"
	"tracelight-hq/tracelight/pkg/scope"
	"tracelight-hq/tracelight/pkg/telemetry/metrics"
	"tracelight-hq/tracelight/pkg/trace/correlate"
)

// Transport is the request/await shim: an http.RoundTripper decorator that
// snapshots in-scope exchanges while forwarding the call unmodified.
type Transport struct {
	base       http.RoundTripper
	matcher    *scope.Matcher
	correlator *correlate.Correlator
	metrics    *metrics.Collector
}

// RoundTrip forwards the request through the underlying transport. For
// in-scope calls it snapshots the request before issue and the response
// after arrival; the caller always observes the original outcome, including
// transport failures re-raised unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.matcher.InScope(req.URL.String()) {
		return t.base.RoundTrip(req)
	}

	capture := snapshotRequest(req)
	id := t.correlator.Begin(capture)
	t.metrics.CallsIntercepted.Inc()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		// No response ever arrived: no record, original failure re-raised.
		t.correlator.Abort(id)
		t.metrics.CallsAborted.Inc()
		return nil, err
	}

	t.observeResponse(id, resp)
	return resp, nil
}

// snapshotRequest captures request metadata and body synchronously, before
// the underlying call is issued. The body is rewound so the transport sends
// exactly what the caller supplied.
func snapshotRequest(req *http.Request) correlate.RequestCapture {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err == nil {
			body = data
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	return correlate.RequestCapture{
		Time:        time.Now(),
		Method:      req.Method,
		Target:      req.URL.String(),
		Headers:     flattenHeader(req.Header),
		Body:        body,
		ContentType: req.Header.Get("Content-Type"),
	}
}

// observeResponse captures the response through an independent duplicate of
// its body. Event streams are tapped chunk by chunk and finalized when the
// stream completes; everything else is buffered in full and replayed to the
// caller.
func (t *Transport) observeResponse(id string, resp *http.Response) {
	contentType := resp.Header.Get("Content-Type")
	headers := flattenHeader(resp.Header)
	arrived := time.Now()

	complete := func(body []byte) {
		t.correlator.Complete(id, correlate.ResponseCapture{
			Time:        arrived,
			Status:      resp.StatusCode,
			Headers:     headers,
			Body:        body,
			ContentType: contentType,
		})
	}

	if codec.IsEventStream(contentType) {
		resp.Body = newStreamTap(resp.Body, complete)
		return
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		// Capture what arrived; the caller still sees the partial body
		// followed by the original read error.
		resp.Body = &replayBody{r: bytes.NewReader(body), err: err}
	} else {
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}
	complete(body)
}

// replayBody replays a buffered body and then surfaces the read error the
// original stream produced, preserving what the caller would have observed.
type replayBody struct {
	r   *bytes.Reader
	err error
}

func (b *replayBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err == io.EOF && b.err != nil {
		return n, b.err
	}
	return n, err
}

func (b *replayBody) Close() error { return nil }

// flattenHeader flattens an http.Header to the name-to-value mapping used
// by snapshots. Names are lowercased; repeated headers are joined.
func flattenHeader(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for name, values := range h {
		flat[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return flat
}

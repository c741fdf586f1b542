package intercept

import (
	"bytes"
	"io"
	"sync"
)

// streamTap is the event-stream shim: it accumulates body chunks as the
// caller reads them, passing every chunk through with unmodified data and
// timing, and fires onComplete exactly once when the stream ends.
//
// The stream ends when the caller reads through to EOF (or a read error),
// or when the caller closes the body early; either way the record is
// finalized with whatever accumulated by then. A stream the caller never
// touches stays pending and is drained as an orphan at shutdown.
type streamTap struct {
	src        io.ReadCloser
	onComplete func(body []byte)

	mu   sync.Mutex
	buf  bytes.Buffer
	done bool
}

func newStreamTap(src io.ReadCloser, onComplete func(body []byte)) *streamTap {
	return &streamTap{src: src, onComplete: onComplete}
}

func (t *streamTap) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 {
		t.mu.Lock()
		if !t.done {
			t.buf.Write(p[:n])
		}
		t.mu.Unlock()
	}
	if err != nil {
		t.finalize()
	}
	return n, err
}

func (t *streamTap) Close() error {
	t.finalize()
	return t.src.Close()
}

// finalize fires onComplete with the accumulated body, exactly once.
func (t *streamTap) finalize() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	body := append([]byte(nil), t.buf.Bytes()...)
	t.mu.Unlock()

	t.onComplete(body)
}

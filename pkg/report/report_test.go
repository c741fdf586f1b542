package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tracelight-hq/tracelight/pkg/trace"
)

func sampleRecords() []*trace.ExchangeRecord {
	return []*trace.ExchangeRecord{
		{
			Request: trace.RequestSnapshot{
				Timestamp: 1700000000.5,
				Method:    "POST",
				Target:    "https://api.anthropic.com/v1/messages",
				Headers:   map[string]string{"authorization": "Bearer sk-...0xyz"},
				Body:      map[string]any{"x": float64(1)},
			},
			Response: &trace.ResponseSnapshot{
				Timestamp: 1700000001.2,
				Status:    200,
				Headers:   map[string]string{"content-type": "application/json"},
				Body:      map[string]any{"ok": true},
			},
			CompletedAt: 1700000001.2,
		},
		{
			Request: trace.RequestSnapshot{
				Timestamp: 1700000002.0,
				Method:    "POST",
				Target:    "https://api.anthropic.com/v1/messages",
				Headers:   map[string]string{},
			},
			CompletedAt: 1700000003.0,
			Note:        trace.NoteOrphaned,
		},
	}
}

func TestRender_ContainsExchanges(t *testing.T) {
	doc, err := Render(sampleRecords(), "Test Report", time.Unix(1700000100, 0))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(doc)
	for _, want := range []string{
		"Test Report",
		"https://api.anthropic.com/v1/messages",
		"200",
		"Bearer sk-...0xyz",
		trace.NoteOrphaned,
		"2 exchange(s)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRender_DeterministicAsideFromTimestamp(t *testing.T) {
	records := sampleRecords()
	at := time.Unix(1700000100, 0)

	first, err := Render(records, "Test Report", at)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(records, "Test Report", at)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two renders of the same list are not byte-identical")
	}
}

func TestRender_EmptyList(t *testing.T) {
	doc, err := Render(nil, "Empty", time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(doc), "0 exchange(s)") {
		t.Error("empty report missing zero count")
	}
}

func TestGenerator_WriteRewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	gen := NewGenerator(path, "Rewrite Test")

	if err := gen.Write(sampleRecords(), time.Now()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// A second write with fewer records must fully replace, not patch.
	if err := gen.Write(nil, time.Now()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(second) >= len(first) {
		t.Error("rewrite did not replace the previous report")
	}
	if strings.Contains(string(second), "api.anthropic.com") {
		t.Error("stale exchange content survived the rewrite")
	}
}

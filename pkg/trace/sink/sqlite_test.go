package sink

import (
	"path/filepath"
	"testing"
	"time"

	"tracelight-hq/tracelight/pkg/trace"
)

func openTestIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	index, err := OpenSQLiteIndex(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteIndex failed: %v", err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func TestSQLiteIndex_InsertAndQuery(t *testing.T) {
	index := openTestIndex(t)

	if err := index.Insert(testRecord("https://api.anthropic.com/v1/messages?call=a", 200)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := index.Insert(testRecord("https://api.anthropic.com/v1/messages?call=b", 429)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := index.Insert(testRecord("https://claude.ai/api/organizations", 200)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	n, err := index.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	byTarget, err := index.Query(IndexQuery{TargetContains: "claude.ai"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(byTarget) != 1 {
		t.Fatalf("target filter returned %d records, want 1", len(byTarget))
	}

	byStatus, err := index.Query(IndexQuery{Status: 429})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].Response.Status != 429 {
		t.Errorf("status filter returned %+v", byStatus)
	}

	limited, err := index.Query(IndexQuery{Limit: 2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit returned %d records, want 2", len(limited))
	}
}

func TestSQLiteIndex_OrphanHasNullStatus(t *testing.T) {
	index := openTestIndex(t)

	orphan := &trace.ExchangeRecord{
		Request: trace.RequestSnapshot{
			Timestamp: trace.UnixSeconds(time.Now()),
			Method:    "POST",
			Target:    "https://api.anthropic.com/v1/messages",
			Headers:   map[string]string{},
		},
		CompletedAt: trace.UnixSeconds(time.Now()),
		Note:        trace.NoteOrphaned,
	}
	if err := index.Insert(orphan); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	records, err := index.Query(IndexQuery{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Response != nil {
		t.Error("orphan should round-trip with nil response")
	}
	if records[0].Note != trace.NoteOrphaned {
		t.Errorf("note = %q", records[0].Note)
	}

	// Orphans must not match status filters.
	byStatus, err := index.Query(IndexQuery{Status: 200})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(byStatus) != 0 {
		t.Errorf("status filter matched %d orphans, want 0", len(byStatus))
	}
}

func TestSQLiteIndex_SinceFilter(t *testing.T) {
	index := openTestIndex(t)

	old := testRecord("https://api.anthropic.com/v1/messages?call=old", 200)
	old.CompletedAt = trace.UnixSeconds(time.Now().Add(-2 * time.Hour))
	recent := testRecord("https://api.anthropic.com/v1/messages?call=new", 200)

	if err := index.Insert(old); err != nil {
		t.Fatal(err)
	}
	if err := index.Insert(recent); err != nil {
		t.Fatal(err)
	}

	records, err := index.Query(IndexQuery{Since: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("since filter returned %d records, want 1", len(records))
	}
}

package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tracelight-hq/tracelight/pkg/trace"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	method TEXT NOT NULL,
	target TEXT NOT NULL,
	status INTEGER,
	request_time REAL NOT NULL,
	completed_at REAL NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exchanges_target ON exchanges(target);
CREATE INDEX IF NOT EXISTS idx_exchanges_completed_at ON exchanges(completed_at);
`

// SQLiteIndex mirrors exchange records into a SQLite database so they can
// be filtered without re-reading the whole JSONL log. The JSONL log remains
// the durable source of truth; the index is a queryable convenience.
type SQLiteIndex struct {
	db *sql.DB
}

// IndexQuery filters indexed exchange records.
type IndexQuery struct {
	// TargetContains filters by substring of the request target.
	TargetContains string

	// Status filters by exact response status. Zero means any.
	Status int

	// Since keeps records completed at or after this time.
	Since time.Time

	// Limit caps the number of returned records. Zero means no cap.
	Limit int
}

// OpenSQLiteIndex opens (or creates) the index database at path.
func OpenSQLiteIndex(path string) (*SQLiteIndex, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database %q: %w", path, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}

	return &SQLiteIndex{db: db}, nil
}

// Insert adds one exchange record to the index.
func (x *SQLiteIndex) Insert(record *trace.ExchangeRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record for index: %w", err)
	}

	status := sql.NullInt64{}
	if record.Response != nil {
		status = sql.NullInt64{Int64: int64(record.Response.Status), Valid: true}
	}

	_, err = x.db.Exec(
		`INSERT INTO exchanges (method, target, status, request_time, completed_at, note, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Request.Method,
		record.Request.Target,
		status,
		record.Request.Timestamp,
		record.CompletedAt,
		record.Note,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Query returns indexed records matching the filters, oldest first by
// completion time.
func (x *SQLiteIndex) Query(q IndexQuery) ([]*trace.ExchangeRecord, error) {
	var (
		where []string
		args  []any
	)

	if q.TargetContains != "" {
		where = append(where, "target LIKE ?")
		args = append(args, "%"+q.TargetContains+"%")
	}
	if q.Status != 0 {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if !q.Since.IsZero() {
		where = append(where, "completed_at >= ?")
		args = append(args, trace.UnixSeconds(q.Since))
	}

	query := "SELECT record FROM exchanges"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY completed_at ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := x.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var records []*trace.ExchangeRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan index row: %w", err)
		}
		var record trace.ExchangeRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			// The index is derived data; a corrupt row is skipped.
			continue
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate index rows: %w", err)
	}

	return records, nil
}

// Count returns the number of indexed records.
func (x *SQLiteIndex) Count() (int64, error) {
	var n int64
	if err := x.db.QueryRow("SELECT COUNT(*) FROM exchanges").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count index rows: %w", err)
	}
	return n, nil
}

// Close releases the underlying database.
func (x *SQLiteIndex) Close() error {
	return x.db.Close()
}

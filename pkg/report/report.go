package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tracelight-hq/tracelight/pkg/trace"
)

// Generator writes the HTML report for a record list to a fixed path.
// It implements the sink's ReportWriter contract.
type Generator struct {
	path  string
	title string
}

// NewGenerator creates a generator writing to path with the given display
// title.
func NewGenerator(path, title string) *Generator {
	return &Generator{path: path, title: title}
}

// Path returns the report output path.
func (g *Generator) Path() string {
	return g.path
}

// Write renders the full record list and rewrites the report file.
func (g *Generator) Write(records []*trace.ExchangeRecord, generatedAt time.Time) error {
	doc, err := Render(records, g.title, generatedAt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write report %q: %w", g.path, err)
	}
	return nil
}

// Render produces the report document. Calling it twice with the same
// record list yields byte-identical output aside from the generation
// timestamp.
func Render(records []*trace.ExchangeRecord, title string, generatedAt time.Time) ([]byte, error) {
	data := reportData{
		Title:       title,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Count:       len(records),
		Exchanges:   make([]exchangeView, 0, len(records)),
	}

	for i, rec := range records {
		data.Exchanges = append(data.Exchanges, newExchangeView(i+1, rec))
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

type reportData struct {
	Title       string
	GeneratedAt string
	Count       int
	Exchanges   []exchangeView
}

type exchangeView struct {
	Seq          int
	Method       string
	Target       string
	Status       string
	StatusClass  string
	RequestTime  string
	Note         string
	ReqHeaders   map[string]string
	RespHeaders  map[string]string
	RequestBody  string
	ResponseBody string
}

func newExchangeView(seq int, rec *trace.ExchangeRecord) exchangeView {
	v := exchangeView{
		Seq:         seq,
		Method:      rec.Request.Method,
		Target:      rec.Request.Target,
		RequestTime: formatSeconds(rec.Request.Timestamp),
		Note:        rec.Note,
		ReqHeaders:  rec.Request.Headers,
		RequestBody: prettyBody(rec.Request.Body, ""),
		Status:      "—",
		StatusClass: "orphan",
	}

	if rec.Response != nil {
		v.Status = fmt.Sprintf("%d", rec.Response.Status)
		v.StatusClass = statusClass(rec.Response.Status)
		v.RespHeaders = rec.Response.Headers
		v.ResponseBody = prettyBody(rec.Response.Body, rec.Response.BodyRaw)
	}

	return v
}

// prettyBody renders a decoded body as indented JSON, or falls back to the
// raw text.
func prettyBody(decoded any, raw string) string {
	if decoded != nil {
		if out, err := json.MarshalIndent(decoded, "", "  "); err == nil {
			return string(out)
		}
	}
	return raw
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "server-error"
	case status >= 400:
		return "client-error"
	default:
		return "ok"
	}
}

func formatSeconds(ts float64) string {
	if ts == 0 {
		return ""
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05.000")
}

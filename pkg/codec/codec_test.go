package codec

import (
	"reflect"
	"testing"
)

func TestDecodeRequestBody_JSON(t *testing.T) {
	got := DecodeRequestBody([]byte(`{"x":1}`), "application/json")

	want := map[string]any{"x": float64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeRequestBody = %v, want %v", got, want)
	}
}

func TestDecodeRequestBody_InvalidJSONFallsBack(t *testing.T) {
	got := DecodeRequestBody([]byte(`{"x":`), "application/json")

	if got != `{"x":` {
		t.Errorf("expected raw-text fallback, got %v", got)
	}
}

func TestDecodeRequestBody_Form(t *testing.T) {
	got := DecodeRequestBody([]byte("grant_type=refresh_token&scope=all"), "application/x-www-form-urlencoded")

	flat, ok := got.(map[string]string)
	if !ok {
		t.Fatalf("expected flat map, got %T", got)
	}
	if flat["grant_type"] != "refresh_token" || flat["scope"] != "all" {
		t.Errorf("unexpected form decode: %v", flat)
	}
}

func TestDecodeRequestBody_Empty(t *testing.T) {
	if got := DecodeRequestBody(nil, "application/json"); got != nil {
		t.Errorf("empty body should decode to nil, got %v", got)
	}
}

func TestDecodeRequestBody_UnknownContentType(t *testing.T) {
	got := DecodeRequestBody([]byte("opaque"), "application/octet-stream")
	if got != "opaque" {
		t.Errorf("unknown content type should keep raw text, got %v", got)
	}
}

func TestDecodeResponseBody_JSON(t *testing.T) {
	got := DecodeResponseBody([]byte(`{"ok":true}`), "application/json; charset=utf-8")

	want := map[string]any{"ok": true}
	if !reflect.DeepEqual(got.Decoded, want) {
		t.Errorf("Decoded = %v, want %v", got.Decoded, want)
	}
	if got.RawText != "" {
		t.Errorf("RawText should be empty for decoded JSON, got %q", got.RawText)
	}
}

func TestDecodeResponseBody_InvalidJSONFallsBack(t *testing.T) {
	got := DecodeResponseBody([]byte("not json"), "application/json")

	if got.Decoded != nil {
		t.Errorf("Decoded should be nil on parse failure, got %v", got.Decoded)
	}
	if got.RawText != "not json" {
		t.Errorf("RawText = %q, want original text", got.RawText)
	}
}

func TestDecodeResponseBody_EventStreamStaysRaw(t *testing.T) {
	// Stream data must never be eagerly reassembled into JSON, even when
	// each data line happens to be valid JSON.
	body := "event: message_start\ndata: {\"type\":\"message_start\"}\n\n"
	got := DecodeResponseBody([]byte(body), "text/event-stream")

	if got.Decoded != nil {
		t.Errorf("event stream must not be JSON-decoded, got %v", got.Decoded)
	}
	if got.RawText != body {
		t.Errorf("RawText = %q, want verbatim stream", got.RawText)
	}
}

func TestDecodeResponseBody_PlainTextStaysRaw(t *testing.T) {
	got := DecodeResponseBody([]byte(`{"looks":"like json"}`), "text/plain")

	if got.Decoded != nil {
		t.Error("text/* payloads must not be JSON-decoded")
	}
	if got.RawText != `{"looks":"like json"}` {
		t.Errorf("RawText = %q", got.RawText)
	}
}

func TestDecodeResponseBody_Empty(t *testing.T) {
	got := DecodeResponseBody(nil, "application/json")
	if got.Decoded != nil || got.RawText != "" {
		t.Errorf("empty body should decode to zero value, got %+v", got)
	}
}

func TestIsEventStream(t *testing.T) {
	if !IsEventStream("text/event-stream; charset=utf-8") {
		t.Error("expected event-stream content type to match")
	}
	if IsEventStream("application/json") {
		t.Error("json content type must not match")
	}
}

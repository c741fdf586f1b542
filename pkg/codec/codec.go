package codec

import (
	"encoding/json"
	"net/url"
	"strings"
)

// DecodedBody is the result of decoding a response payload. Exactly one of
// Decoded and RawText is set for a non-empty payload.
type DecodedBody struct {
	// Decoded is the structured value for JSON payloads.
	Decoded any

	// RawText preserves the payload verbatim when no structured decode
	// applies or when decoding failed.
	RawText string
}

// DecodeRequestBody decodes an outbound request payload. JSON bodies are
// parsed into a structured value, form bodies are flattened to a
// name-to-value mapping, everything else is kept as raw text. An empty
// payload decodes to nil.
func DecodeRequestBody(raw []byte, contentType string) any {
	if len(raw) == 0 {
		return nil
	}

	ct := strings.ToLower(contentType)
	switch {
	case isForm(ct):
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return string(raw)
		}
		flat := make(map[string]string, len(values))
		for name := range values {
			flat[name] = values.Get(name)
		}
		return flat

	case isJSON(ct):
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return string(raw)
		}
		return v

	default:
		return string(raw)
	}
}

// DecodeResponseBody decodes a response payload according to its content
// type. Event-stream and textual payloads stay raw text; JSON payloads are
// parsed with a raw-text fallback; unknown content types are captured as
// raw text. An empty payload decodes to the zero DecodedBody.
func DecodeResponseBody(raw []byte, contentType string) DecodedBody {
	if len(raw) == 0 {
		return DecodedBody{}
	}

	ct := strings.ToLower(contentType)
	switch {
	case isEventStream(ct), isText(ct):
		return DecodedBody{RawText: string(raw)}

	case isJSON(ct):
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return DecodedBody{RawText: string(raw)}
		}
		return DecodedBody{Decoded: v}

	default:
		return DecodedBody{RawText: string(raw)}
	}
}

// IsEventStream reports whether the content type describes a server-sent
// event stream; such responses are tapped chunk by chunk rather than
// buffered.
func IsEventStream(contentType string) bool {
	return isEventStream(strings.ToLower(contentType))
}

func isJSON(ct string) bool {
	return strings.Contains(ct, "json")
}

func isEventStream(ct string) bool {
	return strings.Contains(ct, "text/event-stream")
}

func isText(ct string) bool {
	return strings.HasPrefix(ct, "text/")
}

func isForm(ct string) bool {
	return strings.Contains(ct, "application/x-www-form-urlencoded")
}

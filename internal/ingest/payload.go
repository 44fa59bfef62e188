package ingest

import "fmt"

// Field returns the string value of a top-level payload field.
// A missing or null field falls back to "unknown" — that is what the capture
// client means when a selector was left untouched. Non-string values are
// stringified rather than rejected.
func Field(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return "unknown"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Frames returns the payload's frame list. The second return value is the
// variant discriminator: a payload carrying a "data" array is a capture
// session and gets the session-folder layout, anything else is saved flat.
func Frames(payload map[string]any) ([]any, bool) {
	frames, ok := payload["data"].([]any)
	return frames, ok
}

package ingest

import "testing"

func TestField(t *testing.T) {
	payload := map[string]any{
		"scenario": "indoor",
		"count":    3.0,
		"motion":   nil,
	}

	if got := Field(payload, "scenario"); got != "indoor" {
		t.Errorf("Expected 'indoor', got %q", got)
	}
	if got := Field(payload, "type"); got != "unknown" {
		t.Errorf("Expected missing field to default to 'unknown', got %q", got)
	}
	if got := Field(payload, "motion"); got != "unknown" {
		t.Errorf("Expected null field to default to 'unknown', got %q", got)
	}
	if got := Field(payload, "count"); got != "3" {
		t.Errorf("Expected non-string field stringified, got %q", got)
	}
}

func TestFrames(t *testing.T) {
	if _, ok := Frames(map[string]any{"scenario": "indoor"}); ok {
		t.Error("Payload without data must not be a session")
	}
	if _, ok := Frames(map[string]any{"data": "not-a-list"}); ok {
		t.Error("Non-array data must not be a session")
	}

	frames, ok := Frames(map[string]any{"data": []any{map[string]any{}}})
	if !ok || len(frames) != 1 {
		t.Errorf("Expected one frame, got ok=%v len=%d", ok, len(frames))
	}
}

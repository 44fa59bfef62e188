package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestStatsObserve(t *testing.T) {
	tmpDir := t.TempDir()
	stats := NewStats()
	w := NewWriter(tmpDir, stats)

	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	if _, err := w.Save(map[string]any{"scenario": "walking"}, ts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := w.Save(map[string]any{
		"scenario": "indoor",
		"data":     []any{map[string]any{"image": "data:image/jpeg;base64,QUJD"}},
	}, ts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	snap := stats.Snapshot()
	if snap["flatUploads"] != 1 {
		t.Errorf("Expected 1 flat upload, got %d", snap["flatUploads"])
	}
	if snap["sessionUploads"] != 1 {
		t.Errorf("Expected 1 session upload, got %d", snap["sessionUploads"])
	}
	if snap["framesSaved"] != 1 {
		t.Errorf("Expected 1 frame saved, got %d", snap["framesSaved"])
	}
	if snap["bytesWritten"] <= 0 {
		t.Error("Expected bytesWritten > 0")
	}
}

func TestStatsString(t *testing.T) {
	stats := NewStats()
	if !strings.Contains(stats.String(), "uploads:") {
		t.Errorf("Unexpected summary: %s", stats.String())
	}
}

func TestStatsNilSafe(t *testing.T) {
	var stats *Stats
	stats.observe(&Result{Kind: KindFlat})
}

package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Kind tells which on-disk layout an upload got.
type Kind string

const (
	// KindFlat is a single timestamped JSON file.
	KindFlat Kind = "flat"
	// KindSession is a folder holding data.json plus an images subdirectory.
	KindSession Kind = "session"
)

// Result describes where an upload landed.
type Result struct {
	Path         string
	Kind         Kind
	FramesSaved  int
	FramesFailed int
	Bytes        int64
}

// Writer persists upload payloads under a base directory. The directory is
// handed in at construction time; the package holds no global state.
type Writer struct {
	baseDir string
	stats   *Stats
}

// NewWriter creates a writer rooted at baseDir. stats may be nil.
func NewWriter(baseDir string, stats *Stats) *Writer {
	return &Writer{baseDir: baseDir, stats: stats}
}

// Save persists a payload received at ts, choosing the session layout when
// the payload carries a frame list and the flat layout otherwise.
func (w *Writer) Save(payload map[string]any, ts time.Time) (*Result, error) {
	if frames, ok := Frames(payload); ok {
		return w.saveSession(payload, frames, ts)
	}
	return w.saveFlat(payload, ts)
}

// saveFlat writes the whole payload as {scenario}_{MMDD_HHMMSS}.json.
func (w *Writer) saveFlat(payload map[string]any, ts time.Time) (*Result, error) {
	name := FlatName(Field(payload, "scenario"), ts)
	path, err := ResolveInBase(w.baseDir, name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	path = UniquePath(path)

	size, err := writeJSON(path, payload)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: path, Kind: KindFlat, Bytes: size}
	w.stats.observe(res)
	return res, nil
}

// saveSession creates {type}_{scenario}_{motion}_{YYYYMMDD_HHMMSS}/, splits
// the frames' images into its images/ subdirectory, and writes the rewritten
// payload as data.json. The decoded request is serialized from a copy, never
// mutated.
func (w *Writer) saveSession(payload map[string]any, frames []any, ts time.Time) (*Result, error) {
	name := SessionName(
		Field(payload, "type"),
		Field(payload, "scenario"),
		Field(payload, "motion"),
		ts,
	)
	folder, err := ResolveInBase(w.baseDir, name)
	if err != nil {
		return nil, err
	}
	folder = UniquePath(folder)

	imagesDir := filepath.Join(folder, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	rewritten, saved, failed := ExtractFrames(frames, imagesDir)

	outPayload := make(map[string]any, len(payload))
	for k, v := range payload {
		outPayload[k] = v
	}
	outPayload["data"] = rewritten

	size, err := writeJSON(filepath.Join(folder, "data.json"), outPayload)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:         folder,
		Kind:         KindSession,
		FramesSaved:  saved,
		FramesFailed: failed,
		Bytes:        size,
	}
	w.stats.observe(res)
	return res, nil
}

// writeJSON writes v pretty-printed with 4-space indent and HTML escaping
// off, so a Thai scenario name survives as readable text instead of \u
// escapes. Returns the number of bytes written.
func writeJSON(path string, v any) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return 0, fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	info, statErr := f.Stat()
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if statErr != nil {
		return 0, nil
	}
	return info.Size(), nil
}

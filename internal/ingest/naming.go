package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	flatTimeLayout    = "0102_150405"
	sessionTimeLayout = "20060102_150405"
)

// FlatName derives the filename for a flat upload: {scenario}_{MMDD_HHMMSS}.json.
func FlatName(scenario string, ts time.Time) string {
	return fmt.Sprintf("%s_%s.json", normSegment(scenario), ts.Format(flatTimeLayout))
}

// SessionName derives the folder name for a capture session:
// {type}_{scenario}_{motion}_{YYYYMMDD_HHMMSS}.
func SessionName(typ, scenario, motion string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		normSegment(typ), normSegment(scenario), normSegment(motion),
		ts.Format(sessionTimeLayout))
}

// normSegment NFC-normalizes a name segment so the same scenario typed on an
// iOS client (which sends NFD) and an Android client (NFC) derives the same
// path. Non-ASCII text is otherwise kept verbatim.
func normSegment(s string) string {
	return norm.NFC.String(s)
}

// ResolveInBase joins name onto baseDir and verifies the result stays inside
// it. The name is built from client-supplied fields, so traversal has to be
// caught before anything touches the disk.
func ResolveInBase(baseDir, name string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}

	path := filepath.Join(absBase, name)

	rel, err := filepath.Rel(absBase, path)
	if err != nil {
		return "", fmt.Errorf("cannot compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == "." {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}

	return path, nil
}

// UniquePath returns path unchanged when nothing exists there, otherwise
// appends _2, _3… before the extension until it finds an unused name.
// Same-second uploads with identical fields would otherwise land on top of
// each other.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

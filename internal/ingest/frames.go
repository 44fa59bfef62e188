package ingest

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// minImageLen is the shortest headerless string still treated as an embedded
// image. Anything shorter is a placeholder the capture page sends for frames
// the camera skipped.
const minImageLen = 100

// FrameError is the marker stored in a frame's image field when its embedded
// image could not be decoded or written.
const FrameError = "error"

// ExtractFrames walks a session's frame list and splits embedded base64
// images out to imagesDir as frame_NNNN.jpg, numbered by position in the
// list. It returns a rewritten copy of the list — the input is never
// mutated — in which each image field holds the saved filename, nil when the
// frame carried no image, or "error" when decoding or writing failed. A bad
// frame is logged and recorded as data; the rest of the list is still
// processed.
func ExtractFrames(frames []any, imagesDir string) (rewritten []any, saved, failed int) {
	rewritten = make([]any, len(frames))
	for i, entry := range frames {
		frame, ok := entry.(map[string]any)
		if !ok {
			rewritten[i] = entry
			continue
		}

		out := make(map[string]any, len(frame))
		for k, v := range frame {
			out[k] = v
		}

		name, err := saveFrameImage(frame["image"], imagesDir, i)
		switch {
		case err != nil:
			log.Printf("Frame %d: %v", i, err)
			out["image"] = FrameError
			failed++
		case name == "":
			out["image"] = nil
		default:
			out["image"] = name
			saved++
		}
		rewritten[i] = out
	}
	return rewritten, saved, failed
}

// saveFrameImage decodes one frame's image value and writes it to disk,
// returning the bare filename. An empty filename with a nil error means the
// frame carried no image.
func saveFrameImage(value any, imagesDir string, index int) (string, error) {
	if value == nil {
		return "", nil
	}
	encoded, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("image field is %T, not a string", value)
	}

	// A data-URI header marks the value as an image no matter how short it
	// is; only bare strings are length-checked against the placeholder floor.
	payload := encoded
	if comma := strings.IndexByte(encoded, ','); comma >= 0 {
		payload = encoded[comma+1:]
	} else if len(encoded) < minImageLen {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("base64 decode failed: %w", err)
	}

	name := fmt.Sprintf("frame_%04d.jpg", index)
	if err := os.WriteFile(filepath.Join(imagesDir, name), raw, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

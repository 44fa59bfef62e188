package ingest

import (
	"fmt"
	"sync"
)

// Stats tracks running counters for the ingest pipeline.
type Stats struct {
	mu sync.Mutex

	flatUploads    int64
	sessionUploads int64
	framesSaved    int64
	frameErrors    int64
	bytesWritten   int64
}

// NewStats creates a new Stats instance.
func NewStats() *Stats {
	return &Stats{}
}

// observe records one completed upload.
func (s *Stats) observe(r *Result) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Kind {
	case KindFlat:
		s.flatUploads++
	case KindSession:
		s.sessionUploads++
	}
	s.framesSaved += int64(r.FramesSaved)
	s.frameErrors += int64(r.FramesFailed)
	s.bytesWritten += r.Bytes
}

// Snapshot returns the counters as a map ready for JSON encoding.
func (s *Stats) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]int64{
		"flatUploads":    s.flatUploads,
		"sessionUploads": s.sessionUploads,
		"framesSaved":    s.framesSaved,
		"frameErrors":    s.frameErrors,
		"bytesWritten":   s.bytesWritten,
	}
}

// String returns a one-line summary for logs.
func (s *Stats) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("uploads: flat=%d session=%d; frames: saved=%d errors=%d; bytes=%d",
		s.flatUploads, s.sessionUploads, s.framesSaved, s.frameErrors, s.bytesWritten)
}

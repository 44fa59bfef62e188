package upload

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record describes one accepted upload.
type Record struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Type         string    `json:"type,omitempty"`
	Scenario     string    `json:"scenario"`
	Motion       string    `json:"motion,omitempty"`
	Path         string    `json:"path"`
	FramesSaved  int       `json:"framesSaved"`
	FramesFailed int       `json:"framesFailed"`
	Bytes        int64     `json:"bytes"`
	ReceivedAt   time.Time `json:"receivedAt"`
}

// Store keeps a bounded in-memory history of accepted uploads. The files on
// disk are the real record; this exists so a collection run can be checked
// from a browser without shelling into the machine.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*Record
	order []string // insertion order, oldest first
	limit int
}

// NewStore creates a store that keeps at most limit records.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = 200
	}
	return &Store{
		byID:  make(map[string]*Record),
		limit: limit,
	}
}

// Add assigns the record an ID, stamps its receive time, and stores it,
// evicting the oldest record when over the limit. Returns the assigned ID.
func (s *Store) Add(r *Record) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.New().String()
	if r.ReceivedAt.IsZero() {
		r.ReceivedAt = time.Now()
	}

	s.byID[r.ID] = r
	s.order = append(s.order, r.ID)

	for len(s.order) > s.limit {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}

	return r.ID
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("upload not found: %s", id)
	}
	return r, nil
}

// List returns all records, newest first.
func (s *Store) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	return out
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

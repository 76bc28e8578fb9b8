package memory

import (
	"sync"

	"skytraffic/internal/domain/airspace"
)

const DefaultCapacity = 1024

// Store keeps the most recent snapshots up to a fixed capacity.
type Store struct {
	mu        sync.RWMutex
	capacity  int
	snapshots []airspace.Snapshot
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Snapshots returns the retained snapshots, oldest first.
func (s *Store) Snapshots() []airspace.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]airspace.Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

package core

import (
	"sync"
)

// IDAllocator hands out monotonically increasing IDs per EntityKind.
// Each catalog owns its own allocator, so tests get isolated ID sequences by creating a new one.
type IDAllocator struct {
	mu     sync.Mutex
	counts map[EntityKind]uint64
}

// NewIDAllocator creates an allocator whose first ID for every kind is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{counts: make(map[EntityKind]uint64)}
}

// Next returns the next ID for kind.
func (a *IDAllocator) Next(kind EntityKind) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts[kind]++

	return ID(a.counts[kind])
}

// SetCount makes n the last allocated ID for kind, so the next one is n+1.
// The counter never moves backwards because IDs are never reused; SetCount reports
// whether the count was changed.
func (a *IDAllocator) SetCount(kind EntityKind, n uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n < a.counts[kind] {
		return false
	}

	a.counts[kind] = n

	return true
}

// Count returns the last allocated ID for kind, 0 if none was allocated yet.
func (a *IDAllocator) Count(kind EntityKind) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.counts[kind]
}

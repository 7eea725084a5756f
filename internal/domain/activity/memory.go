package activity

import (
	"context"
	"sync"
)

// DefaultCapacity bounds a MemoryRepository created with a non-positive capacity.
const DefaultCapacity = 500

// MemoryRepository keeps the most recent entries in memory.
type MemoryRepository struct {
	mu       sync.Mutex
	capacity int
	entries  []ActivityEntry // oldest first
}

// NewMemoryRepository creates a repository holding at most capacity entries.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// Log appends an entry, evicting the oldest one when full.
func (r *MemoryRepository) Log(_ context.Context, entry *ActivityEntry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// List returns matching entries newest first.
func (r *MemoryRepository) List(_ context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []ActivityEntry{}
	skipped := 0
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !opts.matches(entry) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, entry)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

package wordlist

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is a thread-safe in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// List returns a copy of the saved entries.
func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries), nil
}

// Add appends e unless its word is already saved.
func (s *MemoryStore) Add(_ context.Context, e Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.entries, e.Word) {
		return false, nil
	}
	s.entries = append(s.entries, e)
	return true, nil
}

// Replace discards the current list and keeps a copy of entries.
func (s *MemoryStore) Replace(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.Clone(entries)
	return nil
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

package verify

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process store. Flush is a no-op.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Availability
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Availability)}
}

func (s *MemoryStore) Get(ctx context.Context, pkg string) (Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[pkg], nil
}

func (s *MemoryStore) Set(ctx context.Context, pkg string, a Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Known() {
		s.entries[pkg] = a
	} else {
		delete(s.entries, pkg)
	}
	return nil
}

func (s *MemoryStore) Flush(ctx context.Context) error { return nil }

func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedEntries(s.entries), nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

func sortedEntries(m map[string]Availability) []Entry {
	entries := make([]Entry, 0, len(m))
	for pkg, a := range m {
		entries = append(entries, Entry{Package: pkg, Availability: a})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Package < entries[j].Package })
	return entries
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)

// NullStore never remembers anything. Every Get returns Unknown.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store { return NullStore{} }

// Get always returns Unknown.
func (NullStore) Get(ctx context.Context, pkg string) (Availability, error) { return Unknown, nil }

// Set does nothing.
func (NullStore) Set(ctx context.Context, pkg string, a Availability) error { return nil }

// Flush does nothing.
func (NullStore) Flush(ctx context.Context) error { return nil }

var _ Store = NullStore{}

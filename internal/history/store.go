// Package history persists submitted prompt entries and navigates them.
//
// A Store is the durable side: an append-only list of entries, loaded
// once per session and bounded to the most recent entries. Log is the
// in-memory side the prompt talks to. It loads the store in the
// background, persists new entries without blocking the prompt and keeps
// the Up/Down navigation index.
package history

import (
	"context"
	"errors"
	"sync"
)

// DefaultMaxEntries bounds the number of entries loaded from a store.
const DefaultMaxEntries = 1000

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("history store closed")

// Store is durable history storage.
type Store interface {
	// Load returns up to limit of the most recent entries, oldest first.
	Load(ctx context.Context, limit int) ([]string, error)

	// Append adds an entry.
	Append(ctx context.Context, entry string) error

	// Close releases the store.
	Close() error
}

// MemoryStore keeps entries in memory. It is used when persistence is
// disabled and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []string
	closed  bool
}

// NewMemoryStore creates a store holding entries.
func NewMemoryStore(entries ...string) *MemoryStore {
	return &MemoryStore{entries: entries}
}

// Load returns up to limit of the most recent entries.
func (s *MemoryStore) Load(_ context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return tail(s.entries, limit), nil
}

// Append adds an entry.
func (s *MemoryStore) Append(_ context.Context, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of everything appended so far.
func (s *MemoryStore) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// tail returns a copy of the last limit entries.
func tail(entries []string, limit int) []string {
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return append([]string(nil), entries...)
}

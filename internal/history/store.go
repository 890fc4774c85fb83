// Package history keeps a bounded, per-user cache of recent conversation
// turns. It is a convenience for callers that don't send their own history
// and is never the authoritative record.
package history

import (
	"context"
	"sync"

	"github.com/themobileprof/mindguard-be/internal/companion"
)

// DefaultLimit is the per-user cap on cached turns
const DefaultLimit = 20

// Store caches recent turns per user
type Store interface {
	// Append adds turns in order, evicting the oldest past the limit
	Append(ctx context.Context, userID string, turns ...companion.Turn) error
	// Recent returns up to n of the newest turns, oldest first. n <= 0 returns all.
	Recent(ctx context.Context, userID string, n int) ([]companion.Turn, error)
	// Clear drops everything cached for the user
	Clear(ctx context.Context, userID string) error
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	limit int

	mu    sync.RWMutex
	users map[string][]companion.Turn
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-process store holding at most limit turns per user
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{
		limit: limit,
		users: make(map[string][]companion.Turn),
	}
}

// Append implements Store
func (s *MemoryStore) Append(_ context.Context, userID string, turns ...companion.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.users[userID], turns...)
	if len(list) > s.limit {
		// copy so the evicted prefix can be collected
		trimmed := make([]companion.Turn, s.limit)
		copy(trimmed, list[len(list)-s.limit:])
		list = trimmed
	}
	s.users[userID] = list
	return nil
}

// Recent implements Store
func (s *MemoryStore) Recent(_ context.Context, userID string, n int) ([]companion.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.users[userID]
	if n > 0 && len(list) > n {
		list = list[len(list)-n:]
	}

	out := make([]companion.Turn, len(list))
	copy(out, list)
	return out, nil
}

// Clear implements Store
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

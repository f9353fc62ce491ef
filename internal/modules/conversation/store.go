package conversation

import (
	"context"
	"sync"
)

// Store persists turns in append order. Implementations must be safe for
// concurrent use. An empty userID means "every user" for List and Clear.
type Store interface {
	// Append adds t and returns the total number of turns after the append.
	Append(ctx context.Context, t Turn) (int, error)
	List(ctx context.Context, userID string) ([]Turn, error)
	Clear(ctx context.Context, userID string) error
}

// MemoryStore keeps the log in process memory; history is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, t Turn) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
	return len(s.turns), nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTurns(s.turns, userID, true), nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" {
		s.turns = nil
		return nil
	}
	s.turns = filterTurns(s.turns, userID, false)
	return nil
}

// filterTurns returns a fresh slice of the turns whose owner equals userID
// (keep=true) or differs from it (keep=false). An empty userID with keep
// copies everything.
func filterTurns(turns []Turn, userID string, keep bool) []Turn {
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		match := userID == "" || t.UserID == userID
		if match == keep {
			out = append(out, t)
		}
	}
	return out
}

package conversation

import (
	"context"
	"fmt"
	"time"
)

// Service stamps and records turns on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the timestamp source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record appends one turn and returns the log length after the append.
func (s *Service) Record(ctx context.Context, userID string, role Role, message string) (int, error) {
	if !role.valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	n, err := s.store.Append(ctx, Turn{
		UserID:    userID,
		Message:   message,
		Timestamp: s.now().UTC(),
		Role:      role,
	})
	if err != nil {
		return 0, fmt.Errorf("record %s turn: %w", role, err)
	}
	return n, nil
}

// History returns the turns for userID, or every turn when userID is empty.
func (s *Service) History(ctx context.Context, userID string) ([]Turn, error) {
	turns, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	if turns == nil {
		turns = []Turn{}
	}
	return turns, nil
}

// Clear drops the turns for userID, or the whole log when userID is empty.
// Clearing an already empty log is not an error.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear turns: %w", err)
	}
	return nil
}

package memory

import (
	"context"
	"sync"
)

// Store is a process-local one-shot notice store: one pending message per
// session, cleared on read.
type Store struct {
	mu      sync.Mutex
	pending map[string]string
}

func New() *Store {
	return &Store{pending: make(map[string]string)}
}

func (s *Store) Put(_ context.Context, sessionID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sessionID] = message
	return nil
}

// Take returns the pending message and clears it atomically. An empty string
// means no message is waiting.
func (s *Store) Take(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.pending[sessionID]
	if ok {
		delete(s.pending, sessionID)
	}
	return message, nil
}

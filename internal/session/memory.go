package session

import (
	"context"
	"sync"

	"visa-checkout/internal/checkout"
)

// MemoryStore is used when no Redis address is configured. State is lost on
// restart.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]checkout.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]checkout.State)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID int64) (checkout.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[sessionID]
	if !ok {
		return checkout.NewState(), nil
	}
	return state, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID int64, state checkout.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}

func (s *MemoryStore) Drop(_ context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

package store

import "context"

// MemoryStore keeps state in process. It backs runs that should not touch
// disk.
type MemoryStore struct {
	state *State
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: NewState()}
}

// Load returns the current state.
func (m *MemoryStore) Load(_ context.Context) (*State, error) {
	return m.state, nil
}

// Save replaces the current state.
func (m *MemoryStore) Save(_ context.Context, s *State) error {
	m.state = s
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	return m.saves
}

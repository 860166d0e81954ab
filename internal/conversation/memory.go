package conversation

import (
	"context"
	"sync"
)

// MemoryStore keeps conversation state in process memory. State is lost on
// restart; meant for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string]*State
}

// NewMemoryStore creates an empty in-memory checkpoint store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string]*State)}
}

// Load returns a copy of the thread's state, or an empty state for a new
// thread.
func (m *MemoryStore) Load(ctx context.Context, threadID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if state, ok := m.threads[threadID]; ok {
		return state.Clone(), nil
	}
	return NewState(threadID), nil
}

// Save stores a copy of the state keyed by its thread ID
func (m *MemoryStore) Save(ctx context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threads[state.ThreadID] = state.Clone()
	return nil
}

package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// MemoryStore is an in-memory ContextStore for tests and ephemeral runs. It
// deep-copies state on both Get and Set so callers never share a reference
// with the store.
type MemoryStore struct {
	mu    sync.Mutex
	state *sourcebit.PluginState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns a copy of the stored state, or nil when nothing has been set.
func (s *MemoryStore) Get() (*sourcebit.PluginState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, nil
	}
	return copyState(s.state)
}

// Set stores a copy of the given state.
func (s *MemoryStore) Set(state *sourcebit.PluginState) error {
	copied, err := copyState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = copied
	return nil
}

func copyState(state *sourcebit.PluginState) (*sourcebit.PluginState, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to copy state: %w", err)
	}

	var copied sourcebit.PluginState
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, fmt.Errorf("failed to copy state: %w", err)
	}
	return &copied, nil
}

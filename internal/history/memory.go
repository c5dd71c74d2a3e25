package history

import (
	"context"
	"sync"
)

// MemoryPersister keeps ledger state in a map. It backs tests and runs
// without a database.
type MemoryPersister struct {
	mu     sync.Mutex
	states map[string]State
	Saves  int
}

// NewMemoryPersister creates an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{states: make(map[string]State)}
}

func (m *MemoryPersister) LoadLedger(_ context.Context, key string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	out := State{
		Entries:      append([]Entry(nil), st.Entries...),
		RecentSkills: append([]string(nil), st.RecentSkills...),
	}
	return &out, nil
}

func (m *MemoryPersister) SaveLedger(_ context.Context, key string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[key] = state
	m.Saves++
	return nil
}

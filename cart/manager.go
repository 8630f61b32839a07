package cart

import (
	"fmt"
	"sync"
)

// Manager hands out one Store per session key. Stores are created
// lazily, loading any cart the session saved before, and live for the
// life of the process. There is no global cart: whoever needs cart
// access holds a Manager (or a Store) by reference.
type Manager struct {
	mu     sync.Mutex
	dir    string
	stores map[string]*Store
}

// NewManager builds a manager persisting carts under dir. An empty dir
// disables persistence: carts are in-memory only.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:    dir,
		stores: make(map[string]*Store),
	}
}

// ForUser returns the store for a user's session, creating it on first
// access.
func (m *Manager) ForUser(userID uint) *Store {
	return m.ForSession(fmt.Sprintf("user-%d", userID))
}

// ForSession returns the store for an arbitrary session key.
func (m *Manager) ForSession(key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[key]; ok {
		return store
	}
	var p Persister
	if m.dir != "" {
		p = NewFilePersister(m.dir, key)
	}
	store := NewStore(p)
	m.stores[key] = store
	return store
}

package cart

import (
	"context"
	"sync"
)

// Manager hands out one Store per cart session, rehydrating each from its
// snapshot slot the first time it is requested.
type Manager struct {
	snap      Snapshot
	namespace string

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(snap Snapshot, namespace string) *Manager {
	return &Manager{
		snap:      snap,
		namespace: namespace,
		stores:    make(map[string]*Store),
	}
}

// Store returns the cart store for the given session, opening it on first
// access.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}

	s := OpenStore(ctx, m.snap, m.namespace+":"+sessionID)
	m.stores[sessionID] = s
	return s
}

// Drop forgets the in-memory store and deletes its snapshot slot.
func (m *Manager) Drop(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.stores, sessionID)
	m.mu.Unlock()

	return m.snap.Delete(ctx, m.namespace+":"+sessionID)
}

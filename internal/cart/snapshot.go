package cart

import (
	"context"
	"sync"
)

// Snapshot is the durable slot a cart serializes into: a single string-keyed
// value holding the whole line array. Implementations must return
// ErrSnapshotNotFound for an absent key.
type Snapshot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// MemorySnapshot is an in-process Snapshot, used in tests and single-node
// runs without redis.
type MemorySnapshot struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{slots: make(map[string][]byte)}
}

func (m *MemorySnapshot) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemorySnapshot) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.slots[key] = cp
	return nil
}

func (m *MemorySnapshot) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}

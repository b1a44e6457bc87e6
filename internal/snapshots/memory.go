package snapshots

import (
	"context"
	"sync"

	"github.com/fatimaskitchen/storefront/internal/cart"
)

// MemoryStore keeps snapshots in process memory. Useful for tests and for
// running without any durable backend.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, cart.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

package policy

import (
	"context"
	"slices"
	"sync"
)

// Medium is a key-value store of opaque slots.
type Medium interface {
	// Read returns the slot's bytes, or nil when the slot was never written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the slot's bytes.
	Write(ctx context.Context, key string, value []byte) error
}

// =============================================================================
// MEMORY MEDIUM - In-memory implementation (for testing/dev)
// =============================================================================

type MemoryMedium struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{slots: make(map[string][]byte)}
}

func (m *MemoryMedium) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.slots[key]), nil
}

func (m *MemoryMedium) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = slices.Clone(value)
	return nil
}

package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// MemoryKVRepository keeps entries in a map. Used by tests and by the memory driver.
type MemoryKVRepository struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMemoryKVRepository creates an empty in-memory repository
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{entries: make(map[string]string)}
}

func (r *MemoryKVRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, apperrors.ErrResourceNotFound)
	}
	return value, nil
}

func (r *MemoryKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range entries {
		r.entries[k] = v
	}
	return nil
}

func (r *MemoryKVRepository) Close() error { return nil }

package repositories

import (
	"context"
	"maps"
	"slices"
)

// KeyValueRepository is the durable string-keyed store the registrar persists its
// collections to. Values are opaque serialized documents.
type KeyValueRepository interface {
	// Get returns apperrors.ErrResourceNotFound when key has never been written.
	Get(ctx context.Context, key string) (string, error)
	// SetMany writes all entries; backends that can, apply them atomically.
	SetMany(ctx context.Context, entries map[string]string) error
	Close() error
}

// sortedKeys gives SetMany implementations a deterministic write order.
func sortedKeys(entries map[string]string) []string {
	return slices.Sorted(maps.Keys(entries))
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// RedisKVRepository stores each entry as a Redis string under "<prefix>:<key>"
type RedisKVRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisKVRepository creates a new RedisKVRepository
func NewRedisKVRepository(client redis.UniversalClient, prefix string) *RedisKVRepository {
	return &RedisKVRepository{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
	}
}

func (r *RedisKVRepository) namespaceKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *RedisKVRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.namespaceKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("key %q: %w", key, apperrors.ErrResourceNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("error reading entry %q: %w", key, err)
	}
	return value, nil
}

// SetMany writes all entries in one MULTI/EXEC block
func (r *RedisKVRepository) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range sortedKeys(entries) {
			pipe.Set(ctx, r.namespaceKey(key), entries[key], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error writing %d entries: %w", len(entries), err)
	}
	return nil
}

func (r *RedisKVRepository) Close() error {
	return r.client.Close()
}

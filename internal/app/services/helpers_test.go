package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/repositories"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestStore loads a Store over repo with predictable IDs. On empty storage the
// default offerings become id-1 {Hindi,Individual}, id-2 {English,Group}, id-3 {Urdu,Special}.
func newTestStore(t *testing.T, repo repositories.KeyValueRepository) *Store {
	t.Helper()
	return NewStore(context.Background(), repo, zerolog.Nop(), WithIDGenerator(sequentialIDs()))
}

// unreliableRepository fails reads or writes on demand.
type unreliableRepository struct {
	*repositories.MemoryKVRepository
	failReads  bool
	failWrites bool
	writes     int
}

var errDiskFull = errors.New("disk full")

func newUnreliableRepository() *unreliableRepository {
	return &unreliableRepository{MemoryKVRepository: repositories.NewMemoryKVRepository()}
}

func (r *unreliableRepository) Get(ctx context.Context, key string) (string, error) {
	if r.failReads {
		return "", errors.New("connection reset")
	}
	return r.MemoryKVRepository.Get(ctx, key)
}

func (r *unreliableRepository) SetMany(ctx context.Context, entries map[string]string) error {
	r.writes++
	if r.failWrites {
		return errDiskFull
	}
	return r.MemoryKVRepository.SetMany(ctx, entries)
}

func storedValue(t *testing.T, repo repositories.KeyValueRepository, key string) string {
	t.Helper()
	value, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	return value
}

package repositories

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// exerciseKeyValueRepository is the behavior every backend must share.
func exerciseKeyValueRepository(t *testing.T, repo KeyValueRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Get(ctx, "courses")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, repo.SetMany(ctx, map[string]string{"courses": `["Hindi","English"]`}))
	value, err := repo.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Hindi","English"]`, value)

	require.NoError(t, repo.SetMany(ctx, map[string]string{"courses": `["Hindi"]`}))
	value, err = repo.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Hindi"]`, value)

	require.NoError(t, repo.SetMany(ctx, map[string]string{
		"offerings":     `[]`,
		"registrations": `[{"student":"Asha"}]`,
	}))
	value, err = repo.Get(ctx, "registrations")
	require.NoError(t, err)
	assert.Equal(t, `[{"student":"Asha"}]`, value)

	value, err = repo.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Hindi"]`, value, "SetMany must leave other keys alone")
}

func TestMemoryKVRepository(t *testing.T) {
	exerciseKeyValueRepository(t, NewMemoryKVRepository())
}

func TestFileKVRepository(t *testing.T) {
	repo, err := NewFileKVRepository(filepath.Join(t.TempDir(), "registrar.json"), zerolog.Nop())
	require.NoError(t, err)

	exerciseKeyValueRepository(t, repo)
}

func TestSQLiteKVRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := db.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "registrar.db"))
	require.NoError(t, err)

	repo, err := NewSQLiteKVRepository(ctx, conn)
	require.NoError(t, err)
	defer repo.Close()

	exerciseKeyValueRepository(t, repo)
}

func TestFileKVRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "registrar.json")

	first, err := NewFileKVRepository(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.SetMany(ctx, map[string]string{
		"courseTypes": `["Individual"]`,
		"courses":     `["Urdu"]`,
	}))

	second, err := NewFileKVRepository(path, zerolog.Nop())
	require.NoError(t, err)

	value, err := second.Get(ctx, "courseTypes")
	require.NoError(t, err)
	assert.Equal(t, `["Individual"]`, value)

	value, err = second.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Urdu"]`, value)
}

func TestFileKVRepository_CorruptFileFallsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registrar.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var logs bytes.Buffer
	repo, err := NewFileKVRepository(path, zerolog.New(&logs))
	require.NoError(t, err)

	_, err = repo.Get(ctx, "courses")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Contains(t, logs.String(), `"event":"storage_fallback"`)

	moved, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(moved))

	require.NoError(t, repo.SetMany(ctx, map[string]string{"courses": `["Hindi"]`}))
	reopened, err := NewFileKVRepository(path, zerolog.Nop())
	require.NoError(t, err)
	value, err := reopened.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Hindi"]`, value)
}

func TestFileKVRepository_NullFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrar.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))

	repo, err := NewFileKVRepository(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, repo.SetMany(context.Background(), map[string]string{"courses": `[]`}))
}

func TestFileKVRepository_FailedFlushRestoresEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileKVRepository(filepath.Join(dir, "registrar.json"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, repo.SetMany(ctx, map[string]string{"courses": `["Hindi"]`}))

	// Point the repository at a directory that no longer exists.
	repo.path = filepath.Join(dir, "gone", "registrar.json")

	err = repo.SetMany(ctx, map[string]string{"courses": `[]`, "offerings": `[]`})
	require.Error(t, err)

	value, err := repo.Get(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, `["Hindi"]`, value)

	_, err = repo.Get(ctx, "offerings")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRedisKVRepository_NamespaceKey(t *testing.T) {
	repo := NewRedisKVRepository(nil, "registrar:")
	assert.Equal(t, "registrar:courses", repo.namespaceKey("courses"))

	bare := NewRedisKVRepository(nil, "")
	assert.Equal(t, "courses", bare.namespaceKey("courses"))
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]string{"registrations": "", "courses": "", "offerings": ""})
	assert.Equal(t, []string{"courses", "offerings", "registrations"}, keys)
}

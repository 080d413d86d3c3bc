package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMigrations_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":  {Data: []byte("SELECT 1;")},
		"001_kv_entries.sql": {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("notes")},
		"old/003_skip.sql":   {Data: []byte("SELECT 1;")},
	}

	migs, err := collectMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, "001", migs[0].version)
	assert.Equal(t, "001_kv_entries.sql", migs[0].name)
	assert.Equal(t, "002", migs[1].version)
}

func TestEmbeddedMigrationsCreateKeyValueTable(t *testing.T) {
	migs, err := collectMigrations(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	content, err := Embedded().Open(migs[0].name)
	require.NoError(t, err)
	defer content.Close()

	buf := make([]byte, 512)
	n, _ := content.Read(buf)
	assert.Contains(t, string(buf[:n]), "kv_entries")
}

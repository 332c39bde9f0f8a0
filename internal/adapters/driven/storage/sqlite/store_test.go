package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "templates.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_InvalidDirectory(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestDefaultDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDataDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mailblocks", "data"), dir)
}

func TestStore_MigrationsApplied(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var name string
	err = store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'templates'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "templates", name)
}

func TestStore_ReopenKeepsVersion(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_Migrate_OrderAndSkip(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"003_extra.up.sql":   {Data: []byte("CREATE TABLE extra_b (id TEXT);")},
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra_a (id TEXT);")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra_a;")},
		"001_old.up.sql":     {Data: []byte("THIS WOULD FAIL;")},
		"notes.up.sql":       {Data: []byte("ALSO WOULD FAIL;")},
	}

	require.NoError(t, store.migrate(fsys))

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestStore_Migrate_FailureRollsBack(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE ok_table (id TEXT); NOT SQL;")},
	}

	err := store.migrate(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestStore(t)

	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestDefaultConfigDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultConfigDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mailblocks"), dir)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nested)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "config.toml"), store.Path())
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("output.format", "json"))
	require.NoError(t, store.Set("output.indent", 4))
	require.NoError(t, store.Set("output.color", true))

	assert.Equal(t, "json", store.GetString("output.format"))
	assert.Equal(t, 4, store.GetInt("output.indent"))
	assert.True(t, store.GetBool("output.color"))

	// Mismatched types yield zero values.
	assert.Empty(t, store.GetString("output.indent"))
	assert.Zero(t, store.GetInt("output.format"))
	assert.False(t, store.GetBool("output.format"))

	// Missing keys yield zero values.
	val, ok := store.Get("missing.key")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("missing.key"))
	assert.Zero(t, store.GetInt("missing.key"))
	assert.False(t, store.GetBool("missing.key"))
}

func TestConfigStore_Persistence(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Set("import.max_input_bytes", 1024))
	require.NoError(t, store.Set("output.format", "tree"))
	require.NoError(t, store.Set("output.color", false))
	require.NoError(t, store.Set("storage.backend", "memory"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 1024, reloaded.GetInt("import.max_input_bytes"))
	assert.Equal(t, "tree", reloaded.GetString("output.format"))
	_, ok := reloaded.Get("output.color")
	assert.True(t, ok)
	assert.False(t, reloaded.GetBool("output.color"))
	assert.Equal(t, "memory", reloaded.GetString("storage.backend"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("output.format", "json"))
	require.NoError(t, store.Set("output.indent", 2))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[output]")
	assert.NotContains(t, string(data), "output.format")
}

func TestConfigStore_ReadsHandWrittenTables(t *testing.T) {
	dir := t.TempDir()
	content := "[output]\nformat = 'tree'\nindent = 3\n\n[mcp]\nrate_limit = 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "tree", store.GetString("output.format"))
	assert.Equal(t, 3, store.GetInt("output.indent"))
	assert.Equal(t, 10, store.GetInt("mcp.rate_limit"))
}

func TestConfigStore_EmptyAndCommentOnlyFiles(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# Just a comment\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

			store, err := NewConfigStore(dir)
			require.NoError(t, err)

			_, ok := store.Get("output.format")
			assert.False(t, ok)
		})
	}
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set("output.format", "json"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	store, dir := newTestStore(t)

	store.mu.Lock()
	store.data["storage.data_dir"] = "/tmp/blocks"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blocks", reloaded.GetString("storage.data_dir"))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("output.format", "json"))

	// Replace the file with a directory so the write fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("output.indent", 4))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("output.format", "json"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	store, _ := newTestStore(t)

	store.mu.Lock()
	store.data["import.max_input_bytes"] = int64(9999)
	store.mu.Unlock()

	assert.Equal(t, 9999, store.GetInt("import.max_input_bytes"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "concurrent.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, store.GetInt("concurrent.key3"))
}

func TestFlattenAndNestMap(t *testing.T) {
	flat := map[string]any{
		"output.format": "json",
		"output.indent": int64(2),
		"top":           true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"output": map[string]any{"format": "json", "indent": int64(2)},
		"top":    true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ValueAndTableConflict(t *testing.T) {
	nested := nestMap(map[string]any{
		"output":        "plain",
		"output.format": "json",
	})

	// Exactly one of the conflicting keys survives; the result stays writable.
	assert.Len(t, nested, 1)
	assert.Contains(t, nested, "output")
}

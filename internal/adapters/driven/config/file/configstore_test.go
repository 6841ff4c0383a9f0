package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pdfindex"), dir)
}

func TestConfigStore_GetString(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	assert.Equal(t, "sqlite", store.GetString("storage.backend"))

	assert.Equal(t, "", store.GetString("nonexistent"))

	require.NoError(t, store.Set("layout.spacing_x", 42))
	assert.Equal(t, "", store.GetString("layout.spacing_x"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("layout.spacing_x", 42))
	assert.Equal(t, 42, store.GetInt("layout.spacing_x"))

	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("storage.backend", "bolt"))
	assert.Equal(t, 0, store.GetInt("storage.backend"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("layout.spacing_x", 250.5))
	require.NoError(t, store.Set("layout.spacing_y", 160))

	assert.Equal(t, 250.5, store.GetFloat("layout.spacing_x"))
	assert.Equal(t, 160.0, store.GetFloat("layout.spacing_y"))
	assert.Equal(t, 0.0, store.GetFloat("nonexistent"))

	require.NoError(t, store.Set("storage.backend", "bolt"))
	assert.Equal(t, 0.0, store.GetFloat("storage.backend"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("watch.recursive", true))
	assert.True(t, store.GetBool("watch.recursive"))

	assert.False(t, store.GetBool("nonexistent"))

	require.NoError(t, store.Set("watch.flag", "true"))
	assert.False(t, store.GetBool("watch.flag"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("storage.backend", "sqlite"))
	require.NoError(t, store1.Set("layout.spacing_x", 300))
	require.NoError(t, store1.Set("layout.spacing_y", 120.5))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store2.GetString("storage.backend"))
	assert.Equal(t, 300, store2.GetInt("layout.spacing_x"))
	assert.Equal(t, 120.5, store2.GetFloat("layout.spacing_y"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("topics.path_separator", " / "))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[storage]")
	assert.Contains(t, content, "[topics]")
	assert.NotContains(t, content, "'storage.backend'")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("[storage]\nbackend = \"sqlite\"\ndata_dir = \"/var/pdfindex\"\n\n[layout]\nspacing_x = 180\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	assert.Equal(t, "/var/pdfindex", store.GetString("storage.data_dir"))
	assert.Equal(t, 180.0, store.GetFloat("layout.spacing_x"))
	assert.Equal(t, []string{"layout.spacing_x", "storage.backend", "storage.data_dir"}, store.Keys())
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("library.root", "/srv/pdfs"))
	require.NoError(t, store.Delete("library.root"))
	require.NoError(t, store.Delete("never.set"))

	_, ok := store.Get("library.root")
	assert.False(t, ok)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok = reloaded.Get("library.root")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("storage.backend", "bolt"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "layout.k" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_ = store.Keys()
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("storage.backend", "bolt"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("storage.data_dir", "/tmp"))
}

func TestNestMap_ScalarWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":   1,
		"a.b": 2,
		"c.d": 3,
	})

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, map[string]any{"d": 3}, nested["c"])
}

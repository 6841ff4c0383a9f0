package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.backend", "bolt"))
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "sqlite", val)
	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	assert.Equal(t, 0, store.GetInt("storage.backend"))
}

func TestConfigStore_Numbers(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("layout.spacing_x", 200))
	require.NoError(t, store.Set("layout.spacing_y", int64(150)))
	require.NoError(t, store.Set("layout.scale", 1.5))

	assert.Equal(t, 200.0, store.GetFloat("layout.spacing_x"))
	assert.Equal(t, 150.0, store.GetFloat("layout.spacing_y"))
	assert.Equal(t, 1.5, store.GetFloat("layout.scale"))
	assert.Equal(t, 150, store.GetInt("layout.spacing_y"))
	assert.Equal(t, 1, store.GetInt("layout.scale"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("flag", true))
	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_DeleteAndKeys(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("b", 1))
	require.NoError(t, store.Set("a", 2))
	assert.Equal(t, []string{"a", "b"}, store.Keys())

	require.NoError(t, store.Delete("a"))
	require.NoError(t, store.Delete("never"))
	assert.Equal(t, []string{"b"}, store.Keys())
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()
}

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
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.base_url", "http://a"))
	require.NoError(t, store.Set("api.base_url", "http://b"))

	val, ok := store.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "http://b", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "text")
	_ = store.Set("i", 42)
	_ = store.Set("i64", int64(7))
	_ = store.Set("f", 2.5)
	_ = store.Set("b", true)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "text"},
		{"string wrong type", store.GetString("i"), ""},
		{"int", store.GetInt("i"), 42},
		{"int from int64", store.GetInt("i64"), 7},
		{"int from float", store.GetInt("f"), 2},
		{"int wrong type", store.GetInt("s"), 0},
		{"float", store.GetFloat("f"), 2.5},
		{"float from int", store.GetFloat("i"), 42.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool", store.GetBool("b"), true},
		{"bool wrong type", store.GetBool("s"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("history.enabled", true)
	_ = store.Set("api.burst", 4)
	_ = store.Set("collection.default", "mac_info")

	assert.Equal(t, []string{"api.burst", "collection.default", "history.enabled"}, store.Keys())
}

func TestConfigStore_Save_Counts(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())

	assert.Equal(t, 2, store.Saves())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('A'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}

package kv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreRoundTrip(t *testing.T) {
	s := New(NewMemory())

	require.NoError(t, s.Set("rec", record{Name: "a", Count: 2}))

	var got record
	require.True(t, s.Get("rec", &got))
	assert.Equal(t, record{Name: "a", Count: 2}, got)

	s.Remove("rec")
	assert.False(t, s.Get("rec", &got))
}

func TestStoreGetMissing(t *testing.T) {
	s := New(NewMemory())
	var got []string
	assert.False(t, s.Get("nothing", &got))
	assert.Nil(t, got)
}

func TestStoreCorruptEntryIsDeleted(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Set("broken", "{not json"))
	s := New(mem)

	var got record
	assert.False(t, s.Get("broken", &got))

	_, ok, err := mem.Get("broken")
	require.NoError(t, err)
	assert.False(t, ok, "corrupt entry should be removed on read")
}

func TestStoreWrongShapeIsDeleted(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Set("list", `{"name":"x"}`))
	s := New(mem)

	var got []string
	assert.False(t, s.Get("list", &got))
	assert.Equal(t, 0, mem.Len())
}

func TestStoreRemovePrefix(t *testing.T) {
	mem := NewMemory()
	s := New(mem)
	require.NoError(t, s.Set("cache:a", 1))
	require.NoError(t, s.Set("cache:b", 2))
	require.NoError(t, s.Set("prefs", 3))

	assert.Equal(t, 2, s.RemovePrefix("cache:"))
	assert.Equal(t, 1, mem.Len())

	var v int
	assert.True(t, s.Get("prefs", &v))
}

type failingBackend struct{ *Memory }

func (f *failingBackend) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (f *failingBackend) Set(string, string) error         { return errors.New("disk gone") }

func TestStoreBackendFailures(t *testing.T) {
	s := New(&failingBackend{Memory: NewMemory()})

	var v int
	assert.False(t, s.Get("k", &v))
	assert.Error(t, s.Set("k", 1))
}

func TestMemoryClosed(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Close())
	_, _, err := mem.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, mem.Set("k", "v"), ErrClosed)
}

func TestSQLiteBackend(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "hub.db")
	backend, err := Open("sqlite", dsn)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Set("search_hub_cache_v1:web:a", "1"))
	require.NoError(t, backend.Set("search_hub_cache_v1:web:b", "2"))
	require.NoError(t, backend.Set("search_hub_cacheX", "3"))
	require.NoError(t, backend.Set("search_hub_cache_v1:web:a", "11"))

	v, ok, err := backend.Get("search_hub_cache_v1:web:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "11", v)

	keys, err := backend.Keys("search_hub_cache_v1:")
	require.NoError(t, err)
	assert.Equal(t, []string{"search_hub_cache_v1:web:a", "search_hub_cache_v1:web:b"}, keys)

	require.NoError(t, backend.Delete("search_hub_cache_v1:web:a"))
	_, ok, err = backend.Get("search_hub_cache_v1:web:a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "hub.db")

	first, err := OpenSQL("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, New(first).Set("prefs", map[string]any{"region": "us"}))
	require.NoError(t, first.Close())

	second, err := OpenSQL("sqlite", dsn)
	require.NoError(t, err)
	defer second.Close()

	var got map[string]any
	require.True(t, New(second).Get("prefs", &got))
	assert.Equal(t, "us", got["region"])
}

func TestRebind(t *testing.T) {
	pg := &SQL{dialect: "postgres"}
	assert.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", pg.rebind("SELECT 1 WHERE a = ? AND b = ?"))

	lite := &SQL{dialect: "sqlite"}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)

	b, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)
}

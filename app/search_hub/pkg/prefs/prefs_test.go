package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func newStore() (*Store, *kv.Memory) {
	mem := kv.NewMemory()
	return NewStore(kv.New(mem), model.DefaultPreferences()), mem
}

func TestLoadDefaults(t *testing.T) {
	s, _ := newStore()
	assert.Equal(t, model.Preferences{Region: "in", SafeSearch: true, PageSize: 10}, s.Load())
}

func TestSaveMergesPatch(t *testing.T) {
	s, _ := newStore()

	got, err := s.Save(Patch{Region: ptr("US")})
	require.NoError(t, err)
	assert.Equal(t, model.Preferences{Region: "us", SafeSearch: true, PageSize: 10}, got)

	got, err = s.Save(Patch{SafeSearch: ptr(false), PageSize: ptr(20)})
	require.NoError(t, err)
	assert.Equal(t, model.Preferences{Region: "us", SafeSearch: false, PageSize: 20}, got)
	assert.Equal(t, got, s.Load())
}

func TestSaveWritesFullRecord(t *testing.T) {
	s, mem := newStore()
	_, err := s.Save(Patch{PageSize: ptr(20)})
	require.NoError(t, err)

	raw, ok, err := mem.Get(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"region":"in","safe":true,"perPage":20}`, raw)
}

func TestSaveRejectsInvalid(t *testing.T) {
	s, _ := newStore()
	_, err := s.Save(Patch{PageSize: ptr(0)})
	assert.Error(t, err)
	_, err = s.Save(Patch{Region: ptr("india")})
	assert.Error(t, err)
	assert.Equal(t, model.DefaultPreferences(), s.Load())
}

func TestLoadInvalidPersistedShape(t *testing.T) {
	s, mem := newStore()

	require.NoError(t, mem.Set(Key, `{"region":"us","safe":false,"perPage":-4}`))
	assert.Equal(t, model.DefaultPreferences(), s.Load())

	require.NoError(t, mem.Set(Key, `[1,2,3]`))
	assert.Equal(t, model.DefaultPreferences(), s.Load())
}

func TestLoadPartialRecordFillsDefaults(t *testing.T) {
	s, mem := newStore()
	require.NoError(t, mem.Set(Key, `{"region":"gb"}`))
	assert.Equal(t, model.Preferences{Region: "gb", SafeSearch: true, PageSize: 10}, s.Load())
}

func TestNewStoreFallsBackOnBadDefaults(t *testing.T) {
	s := NewStore(kv.New(kv.NewMemory()), model.Preferences{Region: "", PageSize: 0})
	assert.Equal(t, model.DefaultPreferences(), s.Defaults())
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{SafeSearch: ptr(true)}.Empty())
}

package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/kv"
)

func newStore() (*Store, *kv.Memory) {
	mem := kv.NewMemory()
	return NewStore(kv.New(mem)), mem
}

func TestRecordIgnoresBlank(t *testing.T) {
	s, mem := newStore()
	s.Record("")
	s.Record("   \t")
	assert.Empty(t, s.List())
	assert.Equal(t, 0, mem.Len())
}

func TestRecordTrimsAndPrepends(t *testing.T) {
	s, _ := newStore()
	s.Record("  golang  ")
	s.Record("rust")
	assert.Equal(t, []string{"rust", "golang"}, s.List())
}

func TestRecordMovesRepeatToFront(t *testing.T) {
	s, _ := newStore()
	s.Record("Cats")
	s.Record("dogs")
	s.Record("cats")

	list := s.List()
	assert.Equal(t, []string{"cats", "dogs"}, list)

	count := 0
	for _, q := range list {
		if q == "cats" || q == "Cats" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRecordEvictsOldest(t *testing.T) {
	s, _ := newStore()
	for i := 1; i <= 9; i++ {
		s.Record(fmt.Sprintf("q%d", i))
	}

	list := s.List()
	require.Len(t, list, Limit)
	assert.Equal(t, "q9", list[0])
	assert.Equal(t, "q2", list[Limit-1])
	assert.NotContains(t, list, "q1")
}

func TestClear(t *testing.T) {
	s, mem := newStore()
	s.Record("a")
	s.Clear()
	assert.Empty(t, s.List())
	assert.Equal(t, 0, mem.Len())
}

func TestCorruptHistoryBehavesAsEmpty(t *testing.T) {
	s, mem := newStore()
	require.NoError(t, mem.Set(Key, "not-json"))

	assert.Empty(t, s.List())
	s.Record("fresh")
	assert.Equal(t, []string{"fresh"}, s.List())
}

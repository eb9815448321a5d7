package datazoo

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairSeq[K, V any](pairs [][2]any) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p[0].(K), p[1].(V)) {
				return
			}
		}
	}
}

func collectSeq[V any](seq iter.Seq[V]) []V {
	var out []V
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestBitMultiMapLookups(t *testing.T) {
	m := CollectBitMultiMap(pairSeq[string, int]([][2]any{
		{"b", 3},
		{"a", 1},
		{"a", 3},
		{"b", 3}, // duplicate pair
		{"c", 2},
	}))

	assert.Equal(t, 3, m.KeyCount())
	assert.Equal(t, 3, m.ValueCount())

	assert.Equal(t, []int{1, 3}, collectSeq(m.Get("a")))
	assert.Equal(t, []int{3}, collectSeq(m.Get("b")))
	assert.Equal(t, []int{2}, collectSeq(m.Get("c")))
	assert.Nil(t, collectSeq(m.Get("missing")))

	assert.Equal(t, []string{"a", "b"}, collectSeq(m.GetKeysOf(3)))
	assert.Equal(t, []string{"c"}, collectSeq(m.GetKeysOf(2)))
	assert.Nil(t, collectSeq(m.GetKeysOf(99)))
}

func TestBitMultiMapEmpty(t *testing.T) {
	m := CollectBitMultiMap(pairSeq[uint32, uint32](nil))
	assert.Equal(t, 0, m.KeyCount())
	assert.Nil(t, collectSeq(m.Get(0)))
	assert.Nil(t, collectSeq(m.GetKeysOf(0)))
}

func TestSparseBitMultiMapLookups(t *testing.T) {
	m := CollectSparseBitMultiMap(pairSeq[string, uint32]([][2]any{
		{"y", uint32(100_000)},
		{"x", uint32(7)},
		{"x", uint32(100_000)},
		{"x", uint32(7)}, // duplicate pair
	}))

	assert.Equal(t, 2, m.KeyCount())
	assert.Equal(t, uint64(3), m.PairCount())

	assert.Equal(t, []uint32{7, 100_000}, collectSeq(m.Get("x")))
	assert.Equal(t, []uint32{100_000}, collectSeq(m.Get("y")))
	assert.Nil(t, collectSeq(m.Get("missing")))

	assert.Equal(t, []string{"x", "y"}, collectSeq(m.GetKeysOf(100_000)))
	assert.Equal(t, []string{"x"}, collectSeq(m.GetKeysOf(7)))
	assert.Nil(t, collectSeq(m.GetKeysOf(1)))
}

func TestEnumMultiMapBuilder(t *testing.T) {
	type field uint8
	b := NewEnumMultiMapBuilder[field, string](3)
	b.AddRow("u", "v")
	b.AddRow()
	b.AddRow("w")

	m, err := b.Bake()
	require.NoError(t, err)
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, []string{"u", "v"}, m.Get(field(0)))
	assert.Empty(t, m.Get(field(1)))
	assert.Equal(t, []string{"w"}, m.Get(field(2)))
	assert.Nil(t, m.Get(field(3)))
}

func TestEnumMultiMapBakeRowCountMismatch(t *testing.T) {
	b := NewEnumMultiMapBuilder[uint32, int](2)
	b.AddRow(1)

	_, err := b.Bake()
	var rce *RowCountError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, 1, rce.Got)
	assert.Equal(t, 2, rce.Want)
}

package datazoo

import (
	"cmp"
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// SparseBitMultiMap is the roaring-backed sibling of BitMultiMap for key and
// value universes too large for a dense bit matrix.
//
// Values are uint32 identifiers; each key row is a compressed bitmap, so
// memory scales with the observed pairs rather than #keys x #values.
type SparseBitMultiMap[K cmp.Ordered] struct {
	sparseKeys []K
	rows       []*roaring.Bitmap
}

// CollectSparseBitMultiMap builds a SparseBitMultiMap from a sequence of
// pairs.
func CollectSparseBitMultiMap[K cmp.Ordered](pairs iter.Seq2[K, uint32]) SparseBitMultiMap[K] {
	var keys []K
	type pair struct {
		k K
		v uint32
	}
	var all []pair
	for k, v := range pairs {
		keys = append(keys, k)
		all = append(all, pair{k, v})
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	m := SparseBitMultiMap[K]{
		sparseKeys: keys,
		rows:       make([]*roaring.Bitmap, len(keys)),
	}
	for i := range m.rows {
		m.rows[i] = roaring.New()
	}
	for _, p := range all {
		row, _ := slices.BinarySearch(keys, p.k)
		m.rows[row].Add(p.v)
	}
	return m
}

// Get iterates the values associated with k, in ascending order.
func (m SparseBitMultiMap[K]) Get(k K) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		row, ok := slices.BinarySearch(m.sparseKeys, k)
		if !ok {
			return
		}
		it := m.rows[row].Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// GetKeysOf iterates the keys associated with v, in ascending order.
func (m SparseBitMultiMap[K]) GetKeysOf(v uint32) iter.Seq[K] {
	return func(yield func(K) bool) {
		for i, row := range m.rows {
			if row.Contains(v) {
				if !yield(m.sparseKeys[i]) {
					return
				}
			}
		}
	}
}

// KeyCount returns the number of distinct keys.
func (m SparseBitMultiMap[K]) KeyCount() int { return len(m.sparseKeys) }

// PairCount returns the number of stored pairs.
func (m SparseBitMultiMap[K]) PairCount() uint64 {
	total := uint64(0)
	for _, row := range m.rows {
		total += row.GetCardinality()
	}
	return total
}

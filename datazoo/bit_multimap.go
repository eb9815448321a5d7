package datazoo

import (
	"cmp"
	"iter"
	"slices"
)

// BitMultiMap is an immutable multimap over small sorted key and value
// universes.
//
// Construction sorts and dedupes the observed keys and values, then marks
// each pair in a #keys x #values BitMatrix. Lookups binary-search the key
// (or value) universe and read one row (or column) of the matrix, so
// membership costs no hashing.
//
// The dense matrix is the right trade below roughly 8000 key x value cells;
// past that, use SparseBitMultiMap.
type BitMultiMap[K, V cmp.Ordered] struct {
	sparseKeys   []K
	sparseValues []V
	matrix       BitMatrix
}

// CollectBitMultiMap builds a BitMultiMap from a sequence of pairs.
func CollectBitMultiMap[K, V cmp.Ordered](pairs iter.Seq2[K, V]) BitMultiMap[K, V] {
	var keys []K
	var values []V
	type pair struct {
		k K
		v V
	}
	var all []pair
	for k, v := range pairs {
		keys = append(keys, k)
		values = append(values, v)
		all = append(all, pair{k, v})
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)
	slices.Sort(values)
	values = slices.Compact(values)

	m := BitMultiMap[K, V]{
		sparseKeys:   keys,
		sparseValues: values,
		matrix:       NewBitMatrix(uint32(len(values)), uint32(len(keys))),
	}
	for _, p := range all {
		row, _ := slices.BinarySearch(keys, p.k)
		col, _ := slices.BinarySearch(values, p.v)
		m.matrix.Enable(uint32(len(values)), uint32(row), uint32(col))
	}
	return m
}

// Get iterates the values associated with k, in ascending order.
// Unknown keys yield nothing.
func (m BitMultiMap[K, V]) Get(k K) iter.Seq[V] {
	return func(yield func(V) bool) {
		if len(m.sparseValues) == 0 {
			return
		}
		row, ok := slices.BinarySearch(m.sparseKeys, k)
		if !ok {
			return
		}
		for col := range m.matrix.Row(uint32(len(m.sparseValues)), uint32(row)) {
			if !yield(m.sparseValues[col]) {
				return
			}
		}
	}
}

// GetKeysOf iterates the keys associated with v, in ascending order.
// Unknown values yield nothing.
func (m BitMultiMap[K, V]) GetKeysOf(v V) iter.Seq[K] {
	return func(yield func(K) bool) {
		if len(m.sparseValues) == 0 {
			return
		}
		col, ok := slices.BinarySearch(m.sparseValues, v)
		if !ok {
			return
		}
		for row := range m.matrix.ActiveRowsInColumn(uint32(len(m.sparseValues)), uint32(col)) {
			if !yield(m.sparseKeys[row]) {
				return
			}
		}
	}
}

// KeyCount returns the number of distinct keys.
func (m BitMultiMap[K, V]) KeyCount() int { return len(m.sparseKeys) }

// ValueCount returns the number of distinct values.
func (m BitMultiMap[K, V]) ValueCount() int { return len(m.sparseValues) }

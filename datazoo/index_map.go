package datazoo

import (
	"fmt"
	"math"
	"math/bits"
)

// RawIndexMap maps small integer keys to small integer values without
// storing the values on the heap.
//
// Each key owns a fixed-width bit field of ceil(log2(maxValue+2)) bits in a
// flat bitset; the all-ones pattern is the empty sentinel, so a stored zero
// is distinguishable from an absent entry. Sound only for densely packed
// integer domains: outside its documented capacity it degrades in memory,
// never in correctness.
type RawIndexMap[K, V Enum] struct {
	set      Bitset
	width    uint32
	capacity uint32
}

// NewRawIndexMap creates a map for keys 0..maxKey and values 0..maxValue.
func NewRawIndexMap[K, V Enum](maxKey K, maxValue V) RawIndexMap[K, V] {
	capacity := uint32(maxKey) + 1
	m := RawIndexMap[K, V]{
		width:    fieldWidth(uint32(maxValue)),
		capacity: capacity,
	}
	m.set = allOnesBitset(capacity * m.width)
	return m
}

// fieldWidth returns the bit width needed to store 0..maxValue plus a
// distinct all-ones sentinel.
func fieldWidth(maxValue uint32) uint32 {
	if maxValue == math.MaxUint32 {
		panic(fmt.Sprintf("datazoo: index map value bound %d leaves no room for the empty sentinel", maxValue))
	}
	return uint32(bits.Len32(maxValue + 1))
}

func allOnesBitset(width uint32) Bitset {
	blocks := make([]uint32, (width+BlockBits-1)/BlockBits)
	for i := range blocks {
		blocks[i] = ^uint32(0)
	}
	return BitsetFromBlocks(blocks)
}

func (m RawIndexMap[K, V]) sentinel() uint32 {
	if m.width >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<m.width - 1
}

// readField returns the raw field value of key k.
func (m RawIndexMap[K, V]) readField(k uint32) uint32 {
	offset := k * m.width
	lo := offset / BlockBits
	shift := offset % BlockBits
	window := uint64(m.set.blocks[lo])
	if int(lo)+1 < len(m.set.blocks) {
		window |= uint64(m.set.blocks[lo+1]) << BlockBits
	}
	return uint32(window>>shift) & m.sentinel()
}

// writeField stores the raw field value of key k.
func (m *RawIndexMap[K, V]) writeField(k, raw uint32) {
	offset := k * m.width
	lo := offset / BlockBits
	shift := offset % BlockBits
	window := uint64(m.set.blocks[lo])
	if int(lo)+1 < len(m.set.blocks) {
		window |= uint64(m.set.blocks[lo+1]) << BlockBits
	}
	mask := uint64(m.sentinel()) << shift
	window = (window &^ mask) | (uint64(raw) << shift)
	m.set.blocks[lo] = uint32(window)
	if int(lo)+1 < len(m.set.blocks) {
		m.set.blocks[lo+1] = uint32(window >> BlockBits)
	}
}

// Get returns the value stored for k.
func (m RawIndexMap[K, V]) Get(k K) (V, bool) {
	var zero V
	if uint32(k) >= m.capacity {
		return zero, false
	}
	raw := m.readField(uint32(k))
	if raw == m.sentinel() {
		return zero, false
	}
	return V(raw), true
}

// Set stores v for k. It panics when v does not fit the field width; use
// SetExpandingValues when the value bound is not known up front.
func (m *RawIndexMap[K, V]) Set(k K, v V) {
	if uint32(k) >= m.capacity {
		panic(fmt.Sprintf("datazoo: index map key %d past capacity %d", uint32(k), m.capacity))
	}
	if uint32(v) >= m.sentinel() {
		panic(fmt.Sprintf("datazoo: index map value %d does not fit a %d-bit field", uint32(v), m.width))
	}
	m.writeField(uint32(k), uint32(v))
}

// SetExpandingValues stores v for k, widening every field in one pass when
// v does not fit the current width.
func (m *RawIndexMap[K, V]) SetExpandingValues(k K, v V) {
	if uint32(v) >= m.sentinel() {
		m.expand(fieldWidth(uint32(v)))
	}
	m.Set(k, v)
}

func (m *RawIndexMap[K, V]) expand(width uint32) {
	widened := RawIndexMap[K, V]{
		width:    width,
		capacity: m.capacity,
		set:      allOnesBitset(m.capacity * width),
	}
	oldSentinel := m.sentinel()
	for k := uint32(0); k < m.capacity; k++ {
		if raw := m.readField(k); raw != oldSentinel {
			widened.writeField(k, raw)
		}
	}
	*m = widened
}

// Remove clears the entry for k.
func (m *RawIndexMap[K, V]) Remove(k K) {
	if uint32(k) >= m.capacity {
		return
	}
	m.writeField(uint32(k), m.sentinel())
}

// Len returns the number of stored entries.
func (m RawIndexMap[K, V]) Len() int {
	count := 0
	for k := uint32(0); k < m.capacity; k++ {
		if m.readField(k) != m.sentinel() {
			count++
		}
	}
	return count
}

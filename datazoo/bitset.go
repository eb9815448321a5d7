package datazoo

import (
	"iter"
	"math/bits"
)

// BlockBits is the number of bits per backing block.
const BlockBits = 32

// Bitset is a sequence of bits backed by 32-bit blocks.
//
// The width is fixed by the backing storage; EnableBit refuses writes past it,
// while EnableBitExtending grows the storage by whole blocks. The zero value
// is an empty bitset of width 0.
type Bitset struct {
	blocks []uint32
}

// NewBitset creates a bitset wide enough to hold width bits, rounded up to a
// whole number of blocks.
func NewBitset(width uint32) Bitset {
	return Bitset{blocks: make([]uint32, (width+BlockBits-1)/BlockBits)}
}

// BitsetFromBlocks wraps existing blocks. The slice is used directly, not
// copied.
func BitsetFromBlocks(blocks []uint32) Bitset {
	return Bitset{blocks: blocks}
}

// Width returns the number of addressable bits.
func (b Bitset) Width() uint32 {
	return uint32(len(b.blocks)) * BlockBits
}

// Bit returns true if bit i is set. Out-of-range bits read as unset.
func (b Bitset) Bit(i uint32) bool {
	block := i / BlockBits
	if block >= uint32(len(b.blocks)) {
		return false
	}
	return b.blocks[block]&(1<<(i%BlockBits)) != 0
}

// EnableBit sets bit i. It returns false when i is past the current width;
// the storage is never grown.
func (b *Bitset) EnableBit(i uint32) bool {
	block := i / BlockBits
	if block >= uint32(len(b.blocks)) {
		return false
	}
	b.blocks[block] |= 1 << (i % BlockBits)
	return true
}

// EnableBitExtending sets bit i, growing the storage by whole blocks as
// needed.
func (b *Bitset) EnableBitExtending(i uint32) {
	block := int(i / BlockBits)
	if block >= len(b.blocks) {
		grown := make([]uint32, block+1)
		copy(grown, b.blocks)
		b.blocks = grown
	}
	b.blocks[block] |= 1 << (i % BlockBits)
}

// Extend grows the storage so that at least width bits are addressable.
func (b *Bitset) Extend(width uint32) {
	need := int((width + BlockBits - 1) / BlockBits)
	if need > len(b.blocks) {
		grown := make([]uint32, need)
		copy(grown, b.blocks)
		b.blocks = grown
	}
}

// DisableRange clears every bit in [start, end).
//
// Partial first and last blocks are masked with block-local crops; whole
// blocks in between are zeroed.
func (b *Bitset) DisableRange(start, end uint32) {
	if end > b.Width() {
		end = b.Width()
	}
	if start >= end {
		return
	}
	first := start / BlockBits
	last := (end - 1) / BlockBits

	keepLow := uint32(1)<<(start%BlockBits) - 1 // bits below start
	keepHigh := ^tailMask(end - last*BlockBits) // bits at end and above

	if first == last {
		b.blocks[first] &= keepLow | keepHigh
		return
	}
	b.blocks[first] &= keepLow
	for i := first + 1; i < last; i++ {
		b.blocks[i] = 0
	}
	b.blocks[last] &= keepHigh
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	count := 0
	for _, block := range b.blocks {
		count += bits.OnesCount32(block)
	}
	return count
}

// Ones iterates the positions of set bits within [start, end), in ascending
// order. Each call starts a fresh scan. An empty range yields nothing.
func (b Bitset) Ones(start, end uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if end > b.Width() {
			end = b.Width()
		}
		if start >= end {
			return
		}
		first := start / BlockBits
		last := (end - 1) / BlockBits
		for block := first; block <= last; block++ {
			word := b.blocks[block]
			if block == first {
				word &= ^uint32(0) << (start % BlockBits)
			}
			if block == last {
				word &= tailMask(end - last*BlockBits)
			}
			base := block * BlockBits
			for word != 0 {
				if !yield(base + uint32(bits.TrailingZeros32(word))) {
					return
				}
				word &= word - 1
			}
		}
	}
}

// tailMask returns a mask of the lowest n bits, for n in 1..32.
func tailMask(n uint32) uint32 {
	if n >= BlockBits {
		return ^uint32(0)
	}
	return uint32(1)<<n - 1
}

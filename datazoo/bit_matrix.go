package datazoo

import (
	"fmt"
	"iter"
	"math"
)

// BitMatrix is a 2D bit array stored row-major in a single Bitset.
//
// The matrix does not record its own width; callers pass it to every access.
// This keeps the struct a single slice header and lets one allocation back
// matrices whose width is only known from context.
type BitMatrix struct {
	set Bitset
}

// NewBitMatrix creates a matrix with the given dimensions, all bits unset.
func NewBitMatrix(width, height uint32) BitMatrix {
	if width != 0 && height > math.MaxUint32/width {
		panic(fmt.Sprintf("datazoo: bit matrix %dx%d overflows the bit address space", width, height))
	}
	return BitMatrix{set: NewBitset(width * height)}
}

// Enable sets the bit at (row, col). It returns false when the position is
// outside the backing storage.
func (m *BitMatrix) Enable(width, row, col uint32) bool {
	if col >= width {
		return false
	}
	return m.set.EnableBit(row*width + col)
}

// Bit returns the bit at (row, col).
func (m BitMatrix) Bit(width, row, col uint32) bool {
	if col >= width {
		return false
	}
	return m.set.Bit(row*width + col)
}

// Row iterates the set column positions of one row.
//
// A zero width would make every row empty and silently wrong, so it panics
// instead.
func (m BitMatrix) Row(width, row uint32) iter.Seq[uint32] {
	if width == 0 {
		panic("datazoo: bit matrix row iteration with zero width")
	}
	return func(yield func(uint32) bool) {
		offset := row * width
		for pos := range m.set.Ones(offset, offset+width) {
			if !yield(pos - offset) {
				return
			}
		}
	}
}

// ActiveRowsInColumn iterates the rows whose bit is set in the given column,
// walking the backing bitset with a stride of width.
func (m BitMatrix) ActiveRowsInColumn(width, col uint32) iter.Seq[uint32] {
	if width == 0 {
		panic("datazoo: bit matrix column iteration with zero width")
	}
	return func(yield func(uint32) bool) {
		if col >= width {
			return
		}
		for pos := col; pos < m.set.Width(); pos += width {
			if m.set.Bit(pos) {
				if !yield(pos / width) {
					return
				}
			}
		}
	}
}

package datazoo

import (
	"fmt"
	"iter"
	"math"
)

// EnumBitMatrix is a BitMatrix whose row count is the variant count of a
// closed enum, checked at construction instead of encoded in the type.
//
// Rows are addressed by enum discriminant, columns by item index.
type EnumBitMatrix struct {
	matrix BitMatrix
	rows   uint32
	width  uint32
}

// NewEnumBitMatrix creates a matrix of rows x width bits.
// It panics when the total bit count overflows, since that is a
// construction-time sizing bug rather than a data condition.
func NewEnumBitMatrix(rows, width uint32) EnumBitMatrix {
	if width != 0 && rows > math.MaxUint32/width {
		panic(fmt.Sprintf("datazoo: enum bit matrix %dx%d overflows the bit address space", rows, width))
	}
	return EnumBitMatrix{
		matrix: NewBitMatrix(width, rows),
		rows:   rows,
		width:  width,
	}
}

// RowCount returns the number of rows (enum variants).
func (m EnumBitMatrix) RowCount() uint32 { return m.rows }

// Width returns the number of columns per row.
func (m EnumBitMatrix) Width() uint32 { return m.width }

// SetRow enables the given column positions in one row.
// Positions at or past the width are ignored.
func (m *EnumBitMatrix) SetRow(row uint32, cols iter.Seq[uint32]) {
	if row >= m.rows {
		return
	}
	for col := range cols {
		m.matrix.Enable(m.width, row, col)
	}
}

// Bit returns the bit at (row, col).
func (m EnumBitMatrix) Bit(row, col uint32) bool {
	return m.matrix.Bit(m.width, row, col)
}

// Row iterates the set column positions of one row restricted to
// [start, end).
func (m EnumBitMatrix) Row(row, start, end uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if row >= m.rows || m.width == 0 {
			return
		}
		if end > m.width {
			end = m.width
		}
		if start >= end {
			return
		}
		offset := row * m.width
		for pos := range m.matrix.set.Ones(offset+start, offset+end) {
			if !yield(pos - offset) {
				return
			}
		}
	}
}

package datazoo

import "iter"

// JaggedBitset stores variable-width rows of bits in one backing Bitset.
//
// Each row is a set of small integers kept as enabled bits relative to the
// row's own start offset. Built a row at a time through Builder.
type JaggedBitset struct {
	set  Bitset
	ends []uint32 // bit offset of each row's end
}

// JaggedBitsetBuilder accumulates rows for a JaggedBitset, extending the
// backing storage by whole blocks as rows arrive.
type JaggedBitsetBuilder struct {
	jb JaggedBitset
}

// NewJaggedBitsetBuilder creates an empty builder.
func NewJaggedBitsetBuilder() *JaggedBitsetBuilder {
	return &JaggedBitsetBuilder{}
}

// AddRow appends one row. cells are bit positions local to the row; the row
// width is the highest cell + 1.
func (b *JaggedBitsetBuilder) AddRow(cells iter.Seq[uint32]) {
	start := b.rowStart()
	end := start
	for cell := range cells {
		b.jb.set.EnableBitExtending(start + cell)
		if start+cell+1 > end {
			end = start + cell + 1
		}
	}
	b.jb.ends = append(b.jb.ends, end)
}

// Build returns the accumulated bitset. The builder must not be reused.
func (b *JaggedBitsetBuilder) Build() JaggedBitset {
	return b.jb
}

func (b *JaggedBitsetBuilder) rowStart() uint32 {
	if len(b.jb.ends) == 0 {
		return 0
	}
	return b.jb.ends[len(b.jb.ends)-1]
}

// RowCount returns the number of rows.
func (j JaggedBitset) RowCount() int { return len(j.ends) }

// Row iterates the row-local positions of the set bits in row i.
func (j JaggedBitset) Row(i int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if i < 0 || i >= len(j.ends) {
			return
		}
		start := uint32(0)
		if i > 0 {
			start = j.ends[i-1]
		}
		for pos := range j.set.Ones(start, j.ends[i]) {
			if !yield(pos - start) {
				return
			}
		}
	}
}

// IntoVecs decompresses each row into a slice of its set positions.
func (j JaggedBitset) IntoVecs() [][]uint32 {
	rows := make([][]uint32, len(j.ends))
	for i := range j.ends {
		for pos := range j.Row(i) {
			rows[i] = append(rows[i], pos)
		}
	}
	return rows
}

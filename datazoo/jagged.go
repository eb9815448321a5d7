package datazoo

import "fmt"

// BadEndError reports a row-end index that is smaller than the end of the
// previous row.
type BadEndError struct {
	Index int
	End   uint32
	Prev  uint32
}

func (e *BadEndError) Error() string {
	return fmt.Sprintf("row end %d at index %d is smaller than previous end %d", e.End, e.Index, e.Prev)
}

// TooLongEndError reports a row-end index past the backing buffer.
type TooLongEndError struct {
	Index int
	End   uint32
	Len   int
}

func (e *TooLongEndError) Error() string {
	return fmt.Sprintf("row end %d at index %d exceeds buffer length %d", e.End, e.Index, e.Len)
}

// JaggedVec stores variable-length rows contiguously in one growable buffer.
//
// Rows are append-only: PushRow adds a row at the end, existing rows are
// immutable. Freeze the layout with IntoVarMatrix when the row count is
// final.
type JaggedVec[V any] struct {
	ends []uint32 // one entry per row; ends[i] is the end of row i
	data []V
}

// PushRow appends a row holding the given values.
func (j *JaggedVec[V]) PushRow(values ...V) {
	j.data = append(j.data, values...)
	j.ends = append(j.ends, uint32(len(j.data)))
}

// RowCount returns the number of rows.
func (j JaggedVec[V]) RowCount() int { return len(j.ends) }

// Len returns the total number of stored values.
func (j JaggedVec[V]) Len() int { return len(j.data) }

// Row returns the slice backing row i. The slice aliases the internal
// buffer and must not be appended to.
func (j JaggedVec[V]) Row(i int) []V {
	if i < 0 || i >= len(j.ends) {
		return nil
	}
	start := uint32(0)
	if i > 0 {
		start = j.ends[i-1]
	}
	return j.data[start:j.ends[i]]
}

// IntoVecs decompresses the rows into independent slices. Iteration gets
// slower, per-row mutation gets cheaper; the content is unchanged.
func (j JaggedVec[V]) IntoVecs() [][]V {
	rows := make([][]V, len(j.ends))
	for i := range j.ends {
		row := j.Row(i)
		rows[i] = append(make([]V, 0, len(row)), row...)
	}
	return rows
}

// IntoVarMatrix freezes the rows into a VarMatrix. The backing buffers are
// handed over, not copied.
func (j JaggedVec[V]) IntoVarMatrix() (VarMatrix[V], error) {
	if len(j.ends) == 0 {
		return NewVarMatrix[V](nil, nil)
	}
	// The last end is implicit in a VarMatrix: it is the buffer length.
	return NewVarMatrix(j.ends[:len(j.ends)-1], j.data)
}

// VarMatrix stores a fixed set of variable-length rows contiguously.
//
// The layout is one flat buffer plus a monotonically non-decreasing ends
// index; the last row's end is implicitly the buffer length, so a matrix of
// N rows carries N-1 ends. Construction validates the index and never
// panics, since a malformed ends list can stem from external input.
type VarMatrix[V any] struct {
	ends []uint32
	data []V
}

// NewVarMatrix builds a matrix of len(ends)+1 rows over data.
//
// Every end must satisfy ends[i-1] <= ends[i] <= len(data); violations are
// reported as *BadEndError or *TooLongEndError.
func NewVarMatrix[V any](ends []uint32, data []V) (VarMatrix[V], error) {
	prev := uint32(0)
	for i, end := range ends {
		if end > uint32(len(data)) {
			return VarMatrix[V]{}, &TooLongEndError{Index: i, End: end, Len: len(data)}
		}
		if end < prev {
			return VarMatrix[V]{}, &BadEndError{Index: i, End: end, Prev: prev}
		}
		prev = end
	}
	return VarMatrix[V]{ends: ends, data: data}, nil
}

// RowCount returns the number of rows.
func (m VarMatrix[V]) RowCount() int {
	if m.ends == nil && m.data == nil {
		return 0
	}
	return len(m.ends) + 1
}

// Row returns the slice backing row i, or nil when i is out of range.
func (m VarMatrix[V]) Row(i int) []V {
	if i < 0 || i >= m.RowCount() {
		return nil
	}
	start := uint32(0)
	if i > 0 {
		start = m.ends[i-1]
	}
	end := uint32(len(m.data))
	if i < len(m.ends) {
		end = m.ends[i]
	}
	return m.data[start:end]
}

// IntoVecs decompresses the rows into independent slices.
func (m VarMatrix[V]) IntoVecs() [][]V {
	rows := make([][]V, m.RowCount())
	for i := range rows {
		row := m.Row(i)
		rows[i] = append(make([]V, 0, len(row)), row...)
	}
	return rows
}

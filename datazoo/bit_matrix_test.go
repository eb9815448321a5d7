package datazoo

import (
	"slices"
	"testing"
)

func TestBitMatrixEnableAndBit(t *testing.T) {
	m := NewBitMatrix(10, 4)
	if !m.Enable(10, 2, 7) {
		t.Fatalf("expected Enable(2, 7) to succeed")
	}
	if !m.Bit(10, 2, 7) {
		t.Errorf("expected bit (2, 7) to be set")
	}
	if m.Bit(10, 2, 6) || m.Bit(10, 1, 7) {
		t.Errorf("expected neighboring bits to stay clear")
	}
	if m.Enable(10, 0, 10) {
		t.Errorf("expected column past width to be rejected")
	}
	if m.Enable(10, 4, 0) {
		t.Errorf("expected row past height to be rejected")
	}
}

func TestBitMatrixRow(t *testing.T) {
	// width 10 puts row 3 across a block boundary
	m := NewBitMatrix(10, 4)
	for _, col := range []uint32{0, 3, 9} {
		m.Enable(10, 3, col)
	}
	m.Enable(10, 2, 5)

	var got []uint32
	for col := range m.Row(10, 3) {
		got = append(got, col)
	}
	if want := []uint32{0, 3, 9}; !slices.Equal(got, want) {
		t.Errorf("Row(3) = %v, expected %v", got, want)
	}
}

func TestBitMatrixActiveRowsInColumn(t *testing.T) {
	m := NewBitMatrix(6, 5)
	for _, row := range []uint32{0, 2, 4} {
		m.Enable(6, row, 4)
	}
	m.Enable(6, 1, 3)

	var got []uint32
	for row := range m.ActiveRowsInColumn(6, 4) {
		got = append(got, row)
	}
	if want := []uint32{0, 2, 4}; !slices.Equal(got, want) {
		t.Errorf("ActiveRowsInColumn(4) = %v, expected %v", got, want)
	}

	for range m.ActiveRowsInColumn(6, 6) {
		t.Fatalf("expected no rows for a column past the width")
	}
}

func TestBitMatrixZeroWidthPanics(t *testing.T) {
	m := NewBitMatrix(0, 3)
	defer func() {
		if recover() == nil {
			t.Errorf("expected Row with zero width to panic")
		}
	}()
	m.Row(0, 1)
}

func TestEnumBitMatrixRowCrop(t *testing.T) {
	m := NewEnumBitMatrix(3, 20)
	m.SetRow(1, slices.Values([]uint32{2, 5, 11, 19}))
	m.SetRow(1, slices.Values([]uint32{25})) // past width, ignored
	m.SetRow(3, slices.Values([]uint32{0}))  // past row count, ignored

	if !m.Bit(1, 11) {
		t.Errorf("expected bit (1, 11) to be set")
	}
	if m.Bit(1, 25) || m.Bit(3, 0) {
		t.Errorf("expected out-of-range writes to be dropped")
	}

	var got []uint32
	for col := range m.Row(1, 3, 12) {
		got = append(got, col)
	}
	if want := []uint32{5, 11}; !slices.Equal(got, want) {
		t.Errorf("Row(1, 3, 12) = %v, expected %v", got, want)
	}

	// end is clamped to the width
	got = got[:0]
	for col := range m.Row(1, 12, 99) {
		got = append(got, col)
	}
	if want := []uint32{19}; !slices.Equal(got, want) {
		t.Errorf("Row(1, 12, 99) = %v, expected %v", got, want)
	}
}

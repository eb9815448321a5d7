package datazoo

import (
	"slices"
	"testing"
)

func collect(t *testing.T, b Bitset, start, end uint32) []uint32 {
	t.Helper()
	var got []uint32
	for pos := range b.Ones(start, end) {
		got = append(got, pos)
	}
	return got
}

func spans(ranges ...[2]uint32) []uint32 {
	var out []uint32
	for _, r := range ranges {
		for i := r[0]; i < r[1]; i++ {
			out = append(out, i)
		}
	}
	return out
}

func TestBitsetOnesCropsBlockBoundaries(t *testing.T) {
	b := BitsetFromBlocks([]uint32{0xFF000F0F, 0xF0000FFF, 0xF0F00FFF})

	got := collect(t, b, 24, 76)
	want := spans([2]uint32{24, 44}, [2]uint32{60, 76})
	if !slices.Equal(got, want) {
		t.Errorf("Ones(24, 76) = %v, expected %v", got, want)
	}
}

func TestBitsetOnesEmptyRange(t *testing.T) {
	b := BitsetFromBlocks([]uint32{^uint32(0)})
	if got := collect(t, b, 7, 7); got != nil {
		t.Errorf("expected empty iteration, got %v", got)
	}
	if got := collect(t, b, 9, 3); got != nil {
		t.Errorf("expected empty iteration for inverted range, got %v", got)
	}
}

func TestBitsetEnableBit(t *testing.T) {
	b := NewBitset(40)
	if !b.EnableBit(39) {
		t.Errorf("expected bit 39 to be writable")
	}
	if !b.Bit(39) {
		t.Errorf("expected bit 39 to be set")
	}
	// width rounds up to a whole block
	if !b.EnableBit(63) {
		t.Errorf("expected bit 63 inside the last block to be writable")
	}
	if b.EnableBit(64) {
		t.Errorf("expected bit 64 to be rejected, fixed bitsets do not grow")
	}

	for _, a := range []uint32{0, 10, 38, 40} {
		got := collect(t, b, a, 40)
		if len(got) != 1 && a != 40 {
			t.Errorf("Ones(%d, 40) = %v, expected exactly bit 39", a, got)
		}
	}
}

func TestBitsetEnableBitExtending(t *testing.T) {
	var b Bitset
	b.EnableBitExtending(70)
	if b.Width() != 96 {
		t.Errorf("expected growth by whole blocks to width 96, got %d", b.Width())
	}
	if !b.Bit(70) {
		t.Errorf("expected bit 70 to be set")
	}
}

func TestBitsetDisableRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint32
		want       []uint32
	}{
		{"WithinOneBlock", 4, 12, spans([2]uint32{0, 4}, [2]uint32{12, 96})},
		{"AcrossBlockBoundary", 28, 36, spans([2]uint32{0, 28}, [2]uint32{36, 96})},
		{"WholeMiddleBlock", 20, 70, spans([2]uint32{0, 20}, [2]uint32{70, 96})},
		{"Empty", 50, 50, spans([2]uint32{0, 96})},
		{"PastWidth", 90, 200, spans([2]uint32{0, 90})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BitsetFromBlocks([]uint32{^uint32(0), ^uint32(0), ^uint32(0)})
			b.DisableRange(tt.start, tt.end)
			got := collect(t, b, 0, 96)
			if !slices.Equal(got, tt.want) {
				t.Errorf("DisableRange(%d, %d) left %v, expected %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBitsetCount(t *testing.T) {
	b := NewBitset(64)
	for _, i := range []uint32{0, 31, 32, 63} {
		b.EnableBit(i)
	}
	if b.Count() != 4 {
		t.Errorf("expected count 4, got %d", b.Count())
	}
}

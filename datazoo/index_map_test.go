package datazoo

import "testing"

func TestRawIndexMapSetGet(t *testing.T) {
	m := NewRawIndexMap[uint32, uint32](9, 5)

	if _, ok := m.Get(3); ok {
		t.Fatalf("expected fresh map to hold nothing")
	}

	m.Set(3, 5)
	m.Set(0, 0) // stored zero must be distinguishable from absent
	m.Set(9, 2)

	if v, ok := m.Get(3); !ok || v != 5 {
		t.Errorf("Get(3) = (%d, %t), expected (5, true)", v, ok)
	}
	if v, ok := m.Get(0); !ok || v != 0 {
		t.Errorf("Get(0) = (%d, %t), expected (0, true)", v, ok)
	}
	if _, ok := m.Get(1); ok {
		t.Errorf("expected key 1 to be absent")
	}
	if _, ok := m.Get(10); ok {
		t.Errorf("expected key past capacity to be absent")
	}
	if m.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", m.Len())
	}
}

func TestRawIndexMapRemove(t *testing.T) {
	m := NewRawIndexMap[uint32, uint32](4, 10)
	m.Set(2, 7)
	m.Remove(2)
	m.Remove(100) // past capacity, no-op

	if _, ok := m.Get(2); ok {
		t.Errorf("expected key 2 to be gone")
	}
	if m.Len() != 0 {
		t.Errorf("expected empty map, got %d entries", m.Len())
	}
}

func TestRawIndexMapFieldsCrossBlocks(t *testing.T) {
	// 3-bit fields over 40 keys put several fields across 32-bit boundaries
	m := NewRawIndexMap[uint32, uint32](39, 5)
	for k := uint32(0); k < 40; k++ {
		m.Set(k, k%6)
	}
	for k := uint32(0); k < 40; k++ {
		if v, ok := m.Get(k); !ok || v != k%6 {
			t.Fatalf("Get(%d) = (%d, %t), expected (%d, true)", k, v, ok, k%6)
		}
	}
}

func TestRawIndexMapSetExpandingValues(t *testing.T) {
	m := NewRawIndexMap[uint32, uint32](7, 1)
	m.Set(1, 0)
	m.Set(5, 1)

	// 100 does not fit the 2-bit fields, every field is rewritten wider
	m.SetExpandingValues(6, 100)

	checks := map[uint32]uint32{1: 0, 5: 1, 6: 100}
	for k, want := range checks {
		if v, ok := m.Get(k); !ok || v != want {
			t.Errorf("Get(%d) = (%d, %t), expected (%d, true)", k, v, ok, want)
		}
	}
	if _, ok := m.Get(0); ok {
		t.Errorf("expected key 0 to stay absent after widening")
	}
	if m.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", m.Len())
	}
}

func TestRawIndexMapSetOverflowPanics(t *testing.T) {
	m := NewRawIndexMap[uint32, uint32](3, 1)
	defer func() {
		if recover() == nil {
			t.Errorf("expected Set with an oversized value to panic")
		}
	}()
	m.Set(0, 3) // sentinel of a 2-bit field
}

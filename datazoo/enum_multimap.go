package datazoo

import "fmt"

// Enum constrains keys that are discriminants of a closed enumeration.
type Enum interface {
	~uint8 | ~uint16 | ~uint32 | ~int | ~uint
}

// RowCountError reports a baked row count that does not match the declared
// enum variant count.
type RowCountError struct {
	Got  int
	Want int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("baked %d rows, enum declares %d variants", e.Got, e.Want)
}

// EnumMultiMap is a multimap whose rows are statically indexed by enum
// discriminant: no sorting, no searching, row i belongs to variant i.
//
// Built through EnumMultiMapBuilder, one row per variant in discriminant
// order, then baked into a frozen VarMatrix.
type EnumMultiMap[K Enum, V any] struct {
	rows VarMatrix[V]
}

// Get returns the values of key k. Discriminants past the variant count
// return nil.
func (m EnumMultiMap[K, V]) Get(k K) []V {
	return m.rows.Row(int(k))
}

// RowCount returns the declared variant count.
func (m EnumMultiMap[K, V]) RowCount() int { return m.rows.RowCount() }

// EnumMultiMapBuilder accumulates one row per enum variant.
type EnumMultiMapBuilder[K Enum, V any] struct {
	want   int
	jagged JaggedVec[V]
}

// NewEnumMultiMapBuilder creates a builder expecting variantCount rows.
func NewEnumMultiMapBuilder[K Enum, V any](variantCount int) *EnumMultiMapBuilder[K, V] {
	return &EnumMultiMapBuilder[K, V]{want: variantCount}
}

// AddRow appends the row for the next variant, in discriminant order.
func (b *EnumMultiMapBuilder[K, V]) AddRow(values ...V) {
	b.jagged.PushRow(values...)
}

// Bake freezes the rows. It fails with *RowCountError when the number of
// added rows does not match the declared variant count.
func (b *EnumMultiMapBuilder[K, V]) Bake() (EnumMultiMap[K, V], error) {
	if b.jagged.RowCount() != b.want {
		return EnumMultiMap[K, V]{}, &RowCountError{Got: b.jagged.RowCount(), Want: b.want}
	}
	rows, err := b.jagged.IntoVarMatrix()
	if err != nil {
		return EnumMultiMap[K, V]{}, err
	}
	return EnumMultiMap[K, V]{rows: rows}, nil
}

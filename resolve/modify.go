// Package resolve builds and evaluates the dependency graph between field
// modifiers.
//
// A modifier is an immutable rule over a range of items: it declares the
// fields it reads (Depends) and writes (Changes) and knows how to apply
// itself to one item. Construction partitions the modifiers into static
// ones, applied once and discarded, and dependent ones, kept in a compact
// index-based graph. An update pass re-applies exactly the modifiers whose
// dependencies were touched, parents before their nested children.
package resolve

import (
	"iter"
	"math/bits"

	"github.com/hupe1980/fabgo/binding"
)

// MaxFields is the largest supported field enumeration.
const MaxFields = 32

// Field is one variant of a closed field enumeration: a semantically
// addressable property of an item, such as a font or a color.
type Field uint8

// FieldSet is a set of fields, one bit per variant.
type FieldSet uint32

// NewFieldSet builds a set from individual fields.
func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s |= 1 << f
	}
	return s
}

// Contains returns true if f is in the set.
func (s FieldSet) Contains(f Field) bool { return s&(1<<f) != 0 }

// Union returns the set union. Bit-or is commutative, so summing field sets
// is order-independent.
func (s FieldSet) Union(o FieldSet) FieldSet { return s | o }

// IsEmpty returns true for the empty set.
func (s FieldSet) IsEmpty() bool { return s == 0 }

// Len returns the number of fields in the set.
func (s FieldSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Fields iterates the members in ascending order.
func (s FieldSet) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		rest := uint32(s)
		for rest != 0 {
			if !yield(Field(bits.TrailingZeros32(rest))) {
				return
			}
			rest &= rest - 1
		}
	}
}

// Modify is a value-rule applied to single items.
//
// Implementations are immutable: Depends and Changes must return the same
// sets for the lifetime of the value, and Apply must not retain item.
type Modify[I, C any] interface {
	// Depends returns the fields the rule reads.
	Depends() FieldSet
	// Changes returns the fields the rule writes.
	Changes() FieldSet
	// Apply mutates one item in place.
	Apply(ctx C, item *I) error
}

// Range is a half-open index range over items.
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of covered indexes.
func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains returns true if i lies within the range.
func (r Range) Contains(i uint32) bool { return i >= r.Start && i < r.End }

// ModifyKind is the construction-time payload of one descriptor: either a
// named binding slot or a concrete modifier.
type ModifyKind[I, C any] struct {
	bound   binding.Id
	modify  Modify[I, C]
	isBound bool
}

// Bound declares a binding slot: the value applied over the range is
// whatever the binding store holds for id at update time.
func Bound[I, C any](id binding.Id) ModifyKind[I, C] {
	return ModifyKind[I, C]{bound: id, isBound: true}
}

// Concrete declares a fixed modifier value.
func Concrete[I, C any](m Modify[I, C]) ModifyKind[I, C] {
	return ModifyKind[I, C]{modify: m}
}

// MakeModify is one construction descriptor: a kind tagged with the item
// range it covers. Descriptors are consumed by Make and not retained.
type MakeModify[I, C any] struct {
	Kind  ModifyKind[I, C]
	Range Range
}

// ModifyIndex is a dense handle into a resolver's modifier array. It is
// stable only for the lifetime of the resolver that issued it.
type ModifyIndex uint32

// Changing pairs a root value with the set of its fields updated since the
// last Reset.
type Changing[I any] struct {
	updated FieldSet
	value   I
}

// NewChanging wraps a root value with no pending updates.
func NewChanging[I any](value I) Changing[I] {
	return Changing[I]{value: value}
}

// Update mutates the root value and records f as updated.
func (c *Changing[I]) Update(f Field, mutate func(*I)) {
	mutate(&c.value)
	c.updated |= 1 << f
}

// Updated returns the fields updated since the last Reset.
func (c *Changing[I]) Updated() FieldSet { return c.updated }

// Value returns the current root value.
func (c *Changing[I]) Value() I { return c.value }

// Reset clears the updated set. Idempotent.
func (c *Changing[I]) Reset() { c.updated = 0 }

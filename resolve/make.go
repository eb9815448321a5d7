package resolve

import (
	"log/slog"
	"slices"

	"github.com/hupe1980/fabgo/binding"
	"github.com/hupe1980/fabgo/datazoo"
)

// modifier is one surviving rule with the item range it applies to.
type modifier[I, C any] struct {
	inner Modify[I, C]
	rng   Range
}

// boundRange associates a binding with the item range it covers.
type boundRange struct {
	id  binding.Id
	rng Range
}

// Make is the construction phase of a Resolver.
//
// It consumes the flat descriptor list emitted by a parser and computes the
// static partition, the per-field dependency maps and the root ownership
// mask. Construction is deterministic: field sets combine by bit-or, and all
// ordering derives from the descriptor order, which encodes nesting.
type Make[I, C any] struct {
	fieldCount  int
	defaultItem I
	bindings    []boundRange
	modifiers   []modifier[I, C]
	itemCount   uint32
	log         *slog.Logger
}

// NewMake validates and partitions the descriptor input.
//
// fieldCount is the variant count of the field enumeration. Descriptors tag
// each modifier with its item range; the item count is the largest range
// end. When the same binding id appears in several descriptors, the last
// range wins. An empty input fails with ErrEmptyModifierSet.
func NewMake[I, C any](fieldCount int, defaultItem I, input []MakeModify[I, C]) (*Make[I, C], error) {
	if fieldCount <= 0 || fieldCount > MaxFields {
		return nil, &InvalidFieldCountError{Count: fieldCount}
	}
	if len(input) == 0 {
		return nil, ErrEmptyModifierSet
	}

	m := &Make[I, C]{
		fieldCount:  fieldCount,
		defaultItem: defaultItem,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, mk := range input {
		if mk.Range.End > m.itemCount {
			m.itemCount = mk.Range.End
		}
		if mk.Kind.isBound {
			m.bindings = append(m.bindings, boundRange{id: mk.Kind.bound, rng: mk.Range})
		} else {
			m.modifiers = append(m.modifiers, modifier[I, C]{inner: mk.Kind.modify, rng: mk.Range})
		}
	}

	slices.SortStableFunc(m.bindings, func(a, b boundRange) int {
		return int(a.id) - int(b.id)
	})
	// Last range wins for duplicate ids.
	dedup := m.bindings[:0]
	for _, b := range m.bindings {
		if n := len(dedup); n > 0 && dedup[n-1].id == b.id {
			dedup[n-1] = b
			continue
		}
		dedup = append(dedup, b)
	}
	m.bindings = dedup
	return m, nil
}

// WithLogger sets the logger used for per-item apply warnings, here and on
// the built Resolver. The default discards.
func (m *Make[I, C]) WithLogger(log *slog.Logger) *Make[I, C] {
	if log != nil {
		m.log = log
	}
	return m
}

// Build assembles the Resolver and the initial item list.
//
// Static modifiers (empty Depends) are applied once, in descriptor order,
// onto a default-valued item array and discarded; the returned items carry
// their effect. The remaining modifiers form the incremental graph.
func (m *Make[I, C]) Build(ctx C) (*Resolver[I, C], []I, error) {
	rootMask := m.changeRootMask()
	items, survivors := m.purgeStatic(ctx)

	directDeps, err := m.changeDirectDeps(survivors)
	if err != nil {
		return nil, nil, err
	}
	modifyDeps := m.changeModifyDeps(survivors)

	r := &Resolver[I, C]{
		modifiers:  survivors,
		directDeps: directDeps,
		modifyDeps: modifyDeps,
		rootMask:   rootMask,
		fieldCount: m.fieldCount,
		itemCount:  m.itemCount,
		log:        m.log,
	}
	r.indexBindings(m.bindings)
	return r, items, nil
}

// changeRootMask marks, per field, the item indexes owned by a modifier
// that writes the field without reading it: those indexes must not be reset
// to the root value on a root change, the owner's effect is more specific.
//
// Statics participate: a purged modifier still owns its range.
func (m *Make[I, C]) changeRootMask() datazoo.EnumBitMatrix {
	mask := datazoo.NewEnumBitMatrix(uint32(m.fieldCount), m.itemCount)
	for f := Field(0); int(f) < m.fieldCount; f++ {
		mask.SetRow(uint32(f), func(yield func(uint32) bool) {
			for _, mod := range m.modifiers {
				changes, depends := mod.inner.Changes(), mod.inner.Depends()
				if !changes.Contains(f) || depends.Contains(f) {
					continue
				}
				for i := mod.rng.Start; i < mod.rng.End; i++ {
					if !yield(i) {
						return
					}
				}
			}
		})
	}
	return mask
}

// purgeStatic applies every independent modifier (empty Depends) to a fresh
// default-valued item array and drops it from the active list. This is a
// one-time cost paid here, never repeated on update.
func (m *Make[I, C]) purgeStatic(ctx C) ([]I, []modifier[I, C]) {
	items := make([]I, m.itemCount)
	for i := range items {
		items[i] = m.defaultItem
	}

	survivors := m.modifiers[:0:len(m.modifiers)]
	for _, mod := range m.modifiers {
		if !mod.inner.Depends().IsEmpty() {
			survivors = append(survivors, mod)
			continue
		}
		for i := mod.rng.Start; i < mod.rng.End && i < uint32(len(items)); i++ {
			if err := mod.inner.Apply(ctx, &items[i]); err != nil {
				m.log.Warn("static modifier application failed", "item", i, "error", err)
			}
		}
	}
	return items, survivors
}

// changeDirectDeps maps each field to the modifiers that must re-run when
// it changes: the ones depending on the field that are not nested inside an
// earlier modifier already changing it. Nested dependents are reached
// through the modifier-to-modifier edges instead, which avoids applying
// them twice.
func (m *Make[I, C]) changeDirectDeps(survivors []modifier[I, C]) (datazoo.EnumMultiMap[Field, ModifyIndex], error) {
	builder := datazoo.NewEnumMultiMapBuilder[Field, ModifyIndex](m.fieldCount)
	for f := Field(0); int(f) < m.fieldCount; f++ {
		var row []ModifyIndex
		parentEnd := uint32(0)
		for i, mod := range survivors {
			topLevel := mod.rng.Start >= parentEnd
			if topLevel && mod.inner.Depends().Contains(f) {
				row = append(row, ModifyIndex(i))
			}
			if topLevel && mod.inner.Changes().Contains(f) {
				parentEnd = mod.rng.End
			}
		}
		builder.AddRow(row...)
	}
	return builder.Bake()
}

// changeModifyDeps computes parent-to-child edges: while a modifier that
// changes a field is the active parent, every later modifier inside its
// range that depends on the field re-runs whenever the parent does.
// Children attach to the outermost active parent; deeper changers do not
// take over, so their dependents still run in descriptor order after them.
func (m *Make[I, C]) changeModifyDeps(survivors []modifier[I, C]) datazoo.BitMultiMap[ModifyIndex, ModifyIndex] {
	type edge struct {
		parent, child ModifyIndex
	}
	var edges []edge
	for f := Field(0); int(f) < m.fieldCount; f++ {
		parent := -1
		parentEnd := uint32(0)
		for i, mod := range survivors {
			if parent >= 0 && mod.rng.Start >= parentEnd {
				parent = -1
			}
			if parent >= 0 && mod.inner.Depends().Contains(f) {
				edges = append(edges, edge{parent: ModifyIndex(parent), child: ModifyIndex(i)})
			}
			if parent < 0 && mod.inner.Changes().Contains(f) {
				parent, parentEnd = i, mod.rng.End
			}
		}
	}
	return datazoo.CollectBitMultiMap(func(yield func(ModifyIndex, ModifyIndex) bool) {
		for _, e := range edges {
			if !yield(e.parent, e.child) {
				return
			}
		}
	})
}

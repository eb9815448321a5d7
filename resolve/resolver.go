package resolve

import (
	"log/slog"

	"github.com/hupe1980/fabgo/binding"
	"github.com/hupe1980/fabgo/datazoo"
)

// Resolver is the built dependency graph: which modifiers to re-run for a
// changed field or binding, and in what order.
//
// The graph is index-based: modifiers live in one flat array addressed by
// dense ModifyIndex handles, never by pointers between records. The
// structure is immutable after construction; Update only mutates the items
// it is given.
type Resolver[I, C any] struct {
	modifiers []modifier[I, C]

	// directDeps maps a changed field to the top-level modifiers that
	// depend on it.
	directDeps datazoo.EnumMultiMap[Field, ModifyIndex]

	// modifyDeps holds parent-to-child edges: children re-run whenever
	// their parent does.
	modifyDeps datazoo.BitMultiMap[ModifyIndex, ModifyIndex]

	// bindings and bindingSlots map a binding id to the item range it
	// covers; the slot lookup is a packed index map over the dense ids.
	bindings     []boundRange
	bindingSlots datazoo.RawIndexMap[binding.Id, uint32]

	// rootMask marks, per field and item index, positions owned by a more
	// specific modifier that a root reset must leave alone.
	rootMask datazoo.EnumBitMatrix

	fieldCount int
	itemCount  uint32
	log        *slog.Logger
}

func (r *Resolver[I, C]) indexBindings(bindings []boundRange) {
	r.bindings = bindings
	if len(bindings) == 0 {
		return
	}
	maxId := bindings[len(bindings)-1].id
	r.bindingSlots = datazoo.NewRawIndexMap(maxId, uint32(len(bindings)-1))
	for slot, b := range bindings {
		r.bindingSlots.Set(b.id, uint32(slot))
	}
}

// ModifierCount returns the number of surviving (non-static) modifiers.
func (r *Resolver[I, C]) ModifierCount() int { return len(r.modifiers) }

// ItemCount returns the length of the item sequence the resolver was built
// for.
func (r *Resolver[I, C]) ItemCount() uint32 { return r.itemCount }

// BindingRange returns the item range covered by a binding.
func (r *Resolver[I, C]) BindingRange(id binding.Id) (Range, bool) {
	if len(r.bindings) == 0 {
		return Range{}, false
	}
	slot, ok := r.bindingSlots.Get(id)
	if !ok {
		return Range{}, false
	}
	return r.bindings[slot].rng, true
}

// RootMask returns the per-field root ownership mask.
func (r *Resolver[I, C]) RootMask() datazoo.EnumBitMatrix { return r.rootMask }

// Update runs one incremental pass over items.
//
// Binding-driven writes happen first: every changed binding in the view is
// applied over its covered range. Then the modifiers directly depending on
// the updated root fields re-run, each followed by its registered children,
// so parent writes always happen before dependent child writes.
//
// A failing Apply is logged at warn level with the offending indexes and
// does not stop the pass: one broken rule degrades its own items, not the
// whole output.
func (r *Resolver[I, C]) Update(items []I, changes *Changing[I], view binding.View[Modify[I, C]], ctx C) {
	for id, value := range view.Changed() {
		rng, ok := r.BindingRange(id)
		if !ok {
			continue
		}
		for i := rng.Start; i < rng.End && i < uint32(len(items)); i++ {
			if r.excluded(i) {
				continue
			}
			if err := value.Apply(ctx, &items[i]); err != nil {
				r.log.Warn("binding application failed", "binding", uint32(id), "item", i, "error", err)
			}
		}
	}

	updated := changes.Updated()
	if updated.IsEmpty() {
		return
	}
	candidates := datazoo.NewBitset(uint32(len(r.modifiers)))
	for f := range updated.Fields() {
		for _, mi := range r.directDeps.Get(f) {
			candidates.EnableBit(uint32(mi))
		}
	}
	root := changes.Value()
	for i := range candidates.Ones(0, candidates.Width()) {
		r.evalWithDependencies(ModifyIndex(i), items, root, true, ctx)
	}
}

// evalWithDependencies applies one modifier over its range, then recurses
// into its registered children. Only the top-level call reseeds each
// position from the root value; children rework the values their parent
// just wrote.
func (r *Resolver[I, C]) evalWithDependencies(mi ModifyIndex, items []I, root I, usesRoot bool, ctx C) {
	mod := r.modifiers[mi]
	for i := mod.rng.Start; i < mod.rng.End && i < uint32(len(items)); i++ {
		if r.excluded(i) {
			continue
		}
		if usesRoot {
			items[i] = root
		}
		if err := mod.inner.Apply(ctx, &items[i]); err != nil {
			r.log.Warn("modifier application failed", "modifier", uint32(mi), "item", i, "error", err)
		}
	}
	for child := range r.modifyDeps.Get(mi) {
		r.evalWithDependencies(child, items, root, false, ctx)
	}
}

// excluded reports whether an item index must be skipped by the current
// write.
//
// TODO: merge the relevant rootMask rows into this check once items support
// per-field writes; until then the exclusion set stays empty and a root
// reseed clobbers positions owned by purged static modifiers.
func (r *Resolver[I, C]) excluded(uint32) bool {
	return false
}

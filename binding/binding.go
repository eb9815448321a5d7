// Package binding implements a name-keyed store of externally settable
// values with change tracking.
//
// A World interns binding names to stable Ids and holds the global value per
// Id. A Local is a per-consumer overlay over a World: values set through it
// shadow the world's values for that consumer only. A View is the read side
// handed to an update pass; its Changed sequence is the set of bindings that
// must be re-applied this cycle.
//
// The package performs no locking. A World has a single mutator at a time;
// the host serializes access, typically one update phase per tick.
package binding

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Id is the interned handle of a binding name. Ids are dense, stable for the
// lifetime of the World that issued them, and meaningless across Worlds.
type Id uint32

// ErrUnknownBinding is returned by Sync for buffered names the world never
// interned. It indicates a logic bug in the calling integration, not a
// transient condition, and aborts the update cycle that hit it.
var ErrUnknownBinding = errors.New("tried to bind a name that doesn't exist")

// UnknownBindingError carries the offending name. It unwraps to
// ErrUnknownBinding.
type UnknownBindingError struct {
	Name string
}

func (e *UnknownBindingError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownBinding, e.Name)
}

func (e *UnknownBindingError) Unwrap() error { return ErrUnknownBinding }

type entry[M any] struct {
	value   M
	set     bool
	changed bool
}

type nameId struct {
	name string
	id   Id
}

// World is the root binding store: an interner from names to Ids plus the
// current value and changed flag per Id.
type World[M any] struct {
	entries []entry[M] // indexed by Id
	byName  []nameId   // sorted by name
	eq      func(a, b M) bool
}

// NewWorld creates an empty World.
//
// eq is used by SetIdNeq to skip writes of unchanged values; a nil eq makes
// SetIdNeq behave like SetId.
func NewWorld[M any](eq func(a, b M) bool) *World[M] {
	return &World[M]{eq: eq}
}

// GetOrAdd interns name, returning its stable Id.
func (w *World[M]) GetOrAdd(name string) Id {
	i, ok := slices.BinarySearchFunc(w.byName, name, func(n nameId, target string) int {
		return strings.Compare(n.name, target)
	})
	if ok {
		return w.byName[i].id
	}
	id := Id(len(w.entries))
	w.entries = append(w.entries, entry[M]{})
	w.byName = slices.Insert(w.byName, i, nameId{name: name, id: id})
	return id
}

// Lookup returns the Id of an already-interned name.
func (w *World[M]) Lookup(name string) (Id, bool) {
	i, ok := slices.BinarySearchFunc(w.byName, name, func(n nameId, target string) int {
		return strings.Compare(n.name, target)
	})
	if !ok {
		return 0, false
	}
	return w.byName[i].id, true
}

// SetId stores value for id and marks it changed.
func (w *World[M]) SetId(id Id, value M) {
	if int(id) >= len(w.entries) {
		return
	}
	w.entries[id] = entry[M]{value: value, set: true, changed: true}
}

// SetIdNeq stores value for id, marking it changed only when the value
// differs from the stored one. Re-setting an identical value is a no-op, so
// it never triggers a spurious re-evaluation cascade.
func (w *World[M]) SetIdNeq(id Id, value M) {
	if int(id) >= len(w.entries) {
		return
	}
	e := &w.entries[id]
	if e.set && w.eq != nil && w.eq(e.value, value) {
		return
	}
	*e = entry[M]{value: value, set: true, changed: true}
}

// Set interns name if needed and stores value for it.
func (w *World[M]) Set(name string, value M) {
	w.SetId(w.GetOrAdd(name), value)
}

// ResetChanges clears every changed flag. Idempotent.
func (w *World[M]) ResetChanges() {
	for i := range w.entries {
		w.entries[i].changed = false
	}
}

// View returns a read-only view over the world alone.
func (w *World[M]) View() View[M] {
	return View[M]{root: w}
}

// ViewWithLocal syncs local against the world and returns a view where the
// local overlay shadows the world.
func (w *World[M]) ViewWithLocal(local *Local[M]) (View[M], error) {
	if err := local.Sync(w); err != nil {
		return View[M]{}, err
	}
	return View[M]{root: w, local: local}, nil
}

type localEntry[M any] struct {
	id Id
	e  entry[M]
}

// Local is a per-consumer overlay over a World.
//
// Names set before the world interned them are buffered; Sync drains the
// buffer, resolving each name through the world's interner into the sorted
// resolution cache used by later Set calls.
type Local[M any] struct {
	entries  []localEntry[M] // sorted by id
	buffered []struct {
		name  string
		value M
	}
	resolved []nameId // sorted by name
}

// NewLocal creates an empty overlay.
func NewLocal[M any]() *Local[M] {
	return &Local[M]{}
}

// Set stores value for name. Already-resolved names are written directly by
// Id; unresolved ones are buffered until the next Sync.
func (l *Local[M]) Set(name string, value M) {
	i, ok := slices.BinarySearchFunc(l.resolved, name, func(n nameId, target string) int {
		return strings.Compare(n.name, target)
	})
	if ok {
		l.SetById(l.resolved[i].id, value)
		return
	}
	l.buffered = append(l.buffered, struct {
		name  string
		value M
	}{name, value})
}

// SetById stores value for an already-interned id.
func (l *Local[M]) SetById(id Id, value M) {
	i, ok := slices.BinarySearchFunc(l.entries, id, func(le localEntry[M], target Id) int {
		return int(le.id) - int(target)
	})
	e := entry[M]{value: value, set: true, changed: true}
	if ok {
		l.entries[i].e = e
		return
	}
	l.entries = slices.Insert(l.entries, i, localEntry[M]{id: id, e: e})
}

// Sync drains the buffered names, resolving each through the world's
// interner. A name the world never interned fails with an
// *UnknownBindingError and leaves the remaining buffer untouched.
func (l *Local[M]) Sync(world *World[M]) error {
	for len(l.buffered) > 0 {
		b := l.buffered[0]
		id, ok := world.Lookup(b.name)
		if !ok {
			return &UnknownBindingError{Name: b.name}
		}
		i, _ := slices.BinarySearchFunc(l.resolved, b.name, func(n nameId, target string) int {
			return strings.Compare(n.name, target)
		})
		l.resolved = slices.Insert(l.resolved, i, nameId{name: b.name, id: id})
		l.SetById(id, b.value)
		l.buffered = l.buffered[1:]
	}
	return nil
}

// ResetChanges clears every changed flag. Idempotent.
func (l *Local[M]) ResetChanges() {
	for i := range l.entries {
		l.entries[i].e.changed = false
	}
}

// View is a read-only two-level lookup: the local overlay, when present,
// shadows the root world.
type View[M any] struct {
	root  *World[M]
	local *Local[M]
}

// Get returns the value visible for id, overlay first.
func (v View[M]) Get(id Id) (M, bool) {
	if v.local != nil {
		i, ok := slices.BinarySearchFunc(v.local.entries, id, func(le localEntry[M], target Id) int {
			return int(le.id) - int(target)
		})
		if ok && v.local.entries[i].e.set {
			return v.local.entries[i].e.value, true
		}
	}
	if v.root != nil && int(id) < len(v.root.entries) && v.root.entries[id].set {
		return v.root.entries[id].value, true
	}
	var zero M
	return zero, false
}

// Changed iterates the bindings marked changed, in ascending Id order: the
// sorted outer join of the overlay and the root, preferring the overlay
// value when both are marked.
func (v View[M]) Changed() iter.Seq2[Id, M] {
	return func(yield func(Id, M) bool) {
		var local []localEntry[M]
		if v.local != nil {
			local = v.local.entries
		}
		li := 0
		rootLen := 0
		if v.root != nil {
			rootLen = len(v.root.entries)
		}
		for id := 0; id < rootLen || li < len(local); id++ {
			overlaid := false
			for li < len(local) && int(local[li].id) <= id {
				if int(local[li].id) == id && local[li].e.changed {
					overlaid = true
					if !yield(local[li].id, local[li].e.value) {
						return
					}
				}
				li++
			}
			if overlaid || id >= rootLen {
				continue
			}
			if e := v.root.entries[id]; e.changed {
				if !yield(Id(id), e.value) {
					return
				}
			}
		}
	}
}

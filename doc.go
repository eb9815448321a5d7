// Package fabgo implements a templated, incrementally updated structured
// value system.
//
// A flat list of range-tagged modifier descriptors (typically emitted by a
// format-string parser) is compiled into a compact dependency graph over an
// item sequence, such as styled text segments. Modifiers whose inputs can
// never change are applied once at build time and discarded; the rest are
// re-applied on update only when a field or binding they depend on actually
// changed, parents before their nested children.
//
// # Quick start
//
//	world := fabgo.NewWorld[Segment, Style]()
//	fab, err := fabgo.New(world, descriptors, defaultSegment, fieldCount, style)
//	if err != nil {
//	    return err
//	}
//
//	// Every tick: push new binding values, then run one pass.
//	fab.SetBinding("player_name", nameModifier)
//	if err := fab.Update(style); err != nil {
//	    return err
//	}
//	render(fab.Items())
//
// The building blocks are exported on their own: package datazoo holds the
// bit-level containers the graph is made of, package binding the name-keyed
// value store, and package resolve the graph builder and evaluator.
//
// Everything is synchronous and single-threaded; the host owns whatever
// scheduling surrounds an update pass.
package fabgo

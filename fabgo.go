package fabgo

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fabgo/binding"
	"github.com/hupe1980/fabgo/resolve"
)

// Fab owns one resolved template: the dependency graph built from its
// descriptors, the live item sequence, and a per-instance binding overlay
// over a shared World.
//
// A Fab is not safe for concurrent use; the host runs at most one Update at
// a time, typically one per scheduling tick.
type Fab[I, C any] struct {
	resolver *resolve.Resolver[I, C]
	items    []I
	world    *binding.World[resolve.Modify[I, C]]
	local    *binding.Local[resolve.Modify[I, C]]
	root     resolve.Changing[I]

	logger  *Logger
	metrics MetricsCollector
}

// NewWorld creates a binding World for modifiers of the given item and
// context types.
//
// Value-difference checks (SetIdNeq) use the modifier's optional
// Equal(any) bool method; modifiers without one always count as changed.
func NewWorld[I, C any]() *binding.World[resolve.Modify[I, C]] {
	return binding.NewWorld(modifyEqual[I, C])
}

func modifyEqual[I, C any](a, b resolve.Modify[I, C]) bool {
	if e, ok := a.(interface{ Equal(other any) bool }); ok {
		return e.Equal(b)
	}
	return false
}

// New builds a Fab from the descriptor list a parser produced.
//
// defaultItem seeds every item position before static modifiers are applied;
// fieldCount is the variant count of the field enumeration shared by all
// modifiers. The world is only read, never mutated, so independent Fabs may
// build against the same world concurrently.
func New[I, C any](world *binding.World[resolve.Modify[I, C]], descriptors []resolve.MakeModify[I, C], defaultItem I, fieldCount int, ctx C, optFns ...Option) (*Fab[I, C], error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	start := time.Now()
	mk, err := resolve.NewMake(fieldCount, defaultItem, descriptors)
	if err != nil {
		o.metrics.RecordBuild(0, time.Since(start), err)
		o.logger.LogBuild(0, 0, err)
		return nil, translateError(err)
	}
	resolver, items, err := mk.WithLogger(o.logger.Logger).Build(ctx)
	if err != nil {
		o.metrics.RecordBuild(0, time.Since(start), err)
		o.logger.LogBuild(0, 0, err)
		return nil, translateError(err)
	}

	o.metrics.RecordBuild(len(items), time.Since(start), nil)
	o.logger.LogBuild(resolver.ModifierCount(), len(items), nil)

	return &Fab[I, C]{
		resolver: resolver,
		items:    items,
		world:    world,
		local:    binding.NewLocal[resolve.Modify[I, C]](),
		root:     resolve.NewChanging(defaultItem),
		logger:   o.logger,
		metrics:  o.metrics,
	}, nil
}

// SetBinding stores a modifier value for a named binding in this Fab's
// overlay, shadowing the world's value. Names not yet interned by the world
// are buffered until the next Update.
func (f *Fab[I, C]) SetBinding(name string, value resolve.Modify[I, C]) {
	f.local.Set(name, value)
}

// Root returns the mutable root value. Mutations recorded through
// Changing.Update drive the next Update pass.
func (f *Fab[I, C]) Root() *resolve.Changing[I] {
	return &f.root
}

// Items returns the live item sequence. The slice is owned by the Fab and
// mutated in place by Update.
func (f *Fab[I, C]) Items() []I {
	return f.items
}

// Update runs one incremental pass: syncs the overlay against the world,
// applies every changed binding and every modifier depending on an updated
// root field, then clears the overlay and root change flags.
//
// The world's own change flags are left alone, since other Fabs may share
// the world; the host calls World.ResetChanges once all consumers updated.
func (f *Fab[I, C]) Update(ctx C) error {
	start := time.Now()
	changed := f.root.Updated().Len()

	view, err := f.world.ViewWithLocal(f.local)
	if err != nil {
		f.metrics.RecordUpdate(time.Since(start), err)
		f.logger.LogSync(err)
		return translateError(err)
	}

	f.resolver.Update(f.items, &f.root, view, ctx)
	f.root.Reset()
	f.local.ResetChanges()

	f.metrics.RecordUpdate(time.Since(start), nil)
	f.logger.LogUpdate(changed, nil)
	return nil
}

// ResetWorldChanges clears the shared world's change flags. Call once per
// tick, after every Fab consuming the world has updated.
func (f *Fab[I, C]) ResetWorldChanges() {
	f.world.ResetChanges()
}

// BuildSpec is one construction request for BuildAll.
type BuildSpec[I, C any] struct {
	Descriptors []resolve.MakeModify[I, C]
	DefaultItem I
	FieldCount  int
}

// BuildAll constructs one Fab per spec in parallel against a shared world.
// The first construction error cancels the batch.
func BuildAll[I, C any](world *binding.World[resolve.Modify[I, C]], specs []BuildSpec[I, C], ctx C, optFns ...Option) ([]*Fab[I, C], error) {
	fabs := make([]*Fab[I, C], len(specs))
	g := new(errgroup.Group)
	for i, spec := range specs {
		g.Go(func() error {
			fab, err := New(world, spec.Descriptors, spec.DefaultItem, spec.FieldCount, ctx, optFns...)
			if err != nil {
				return err
			}
			fabs[i] = fab
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fabs, nil
}

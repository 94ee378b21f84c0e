package store

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/domain/drills"
)

// DrillRepository persists the drill library.
type DrillRepository struct {
	docs *docstore.Collection[drills.Drill]
	opts options
}

// NewDrillRepository binds the drills collection.
func NewDrillRepository(docs *docstore.Store, opts ...Option) *DrillRepository {
	return &DrillRepository{
		docs: docstore.NewCollection[drills.Drill](docs, DrillsCollection),
		opts: buildOptions(opts),
	}
}

func drillID(d drills.Drill) string { return d.ID }

// List returns every drill.
func (r *DrillRepository) List(ctx context.Context) ([]drills.Drill, error) {
	return r.docs.Load(ctx)
}

// Templates returns drills flagged as templates.
func (r *DrillRepository) Templates(ctx context.Context) ([]drills.Drill, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]drills.Drill, 0, len(items))
	for _, d := range items {
		if d.IsTemplate {
			out = append(out, d)
		}
	}
	return out, nil
}

// Get returns the drill with id.
func (r *DrillRepository) Get(ctx context.Context, id string) (drills.Drill, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return drills.Drill{}, false, err
	}
	i := indexOf(items, id, drillID)
	if i < 0 {
		return drills.Drill{}, false, nil
	}
	return items[i], true, nil
}

// Create appends a new drill built from validated input.
func (r *DrillRepository) Create(ctx context.Context, in drills.Input) (drills.Drill, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return drills.Drill{}, err
	}
	d := drills.NewDrill(r.opts.newID(), in, r.opts.now())
	if err := r.docs.Save(ctx, append(items, d)); err != nil {
		return drills.Drill{}, err
	}
	return d, nil
}

// Update applies patch to the drill with id.
func (r *DrillRepository) Update(ctx context.Context, id string, patch drills.Patch) (drills.Drill, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return drills.Drill{}, false, err
	}
	i := indexOf(items, id, drillID)
	if i < 0 {
		return drills.Drill{}, false, nil
	}
	patch.Apply(&items[i], r.opts.now())
	if err := r.docs.Save(ctx, items); err != nil {
		return drills.Drill{}, false, err
	}
	return items[i], true, nil
}

// Delete removes the drill with id.
func (r *DrillRepository) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id, drillID)
	if i < 0 {
		return false, nil
	}
	if err := r.docs.Save(ctx, append(items[:i], items[i+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

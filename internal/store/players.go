package store

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/domain/players"
)

// PlayerRepository persists the roster.
type PlayerRepository struct {
	docs *docstore.Collection[players.Player]
	opts options
}

// NewPlayerRepository binds the players collection.
func NewPlayerRepository(docs *docstore.Store, opts ...Option) *PlayerRepository {
	return &PlayerRepository{
		docs: docstore.NewCollection[players.Player](docs, PlayersCollection),
		opts: buildOptions(opts),
	}
}

func playerID(p players.Player) string { return p.ID }

// List returns every player; absent or malformed positions read as an empty list.
func (r *PlayerRepository) List(ctx context.Context) ([]players.Player, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Normalize()
	}
	return items, nil
}

// Get returns the player with id.
func (r *PlayerRepository) Get(ctx context.Context, id string) (players.Player, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return players.Player{}, false, err
	}
	i := indexOf(items, id, playerID)
	if i < 0 {
		return players.Player{}, false, nil
	}
	return items[i], true, nil
}

// Create appends a new player built from validated input.
func (r *PlayerRepository) Create(ctx context.Context, in players.Input) (players.Player, error) {
	items, err := r.List(ctx)
	if err != nil {
		return players.Player{}, err
	}
	p := players.NewPlayer(r.opts.newID(), in, r.opts.now())
	if err := r.docs.Save(ctx, append(items, p)); err != nil {
		return players.Player{}, err
	}
	return p, nil
}

// Update applies patch to the player with id.
func (r *PlayerRepository) Update(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return players.Player{}, false, err
	}
	i := indexOf(items, id, playerID)
	if i < 0 {
		return players.Player{}, false, nil
	}
	patch.Apply(&items[i], r.opts.now())
	if err := r.docs.Save(ctx, items); err != nil {
		return players.Player{}, false, err
	}
	return items[i], true, nil
}

// Delete removes the player with id. Attendance records are left in place.
func (r *PlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id, playerID)
	if i < 0 {
		return false, nil
	}
	if err := r.docs.Save(ctx, append(items[:i], items[i+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

package store

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/domain/games"
)

// GameRepository persists the game schedule.
type GameRepository struct {
	docs *docstore.Collection[games.Game]
	opts options
}

// NewGameRepository binds the games collection.
func NewGameRepository(docs *docstore.Store, opts ...Option) *GameRepository {
	return &GameRepository{
		docs: docstore.NewCollection[games.Game](docs, GamesCollection),
		opts: buildOptions(opts),
	}
}

func gameID(g games.Game) string { return g.ID }

// List returns every game.
func (r *GameRepository) List(ctx context.Context) ([]games.Game, error) {
	return r.docs.Load(ctx)
}

// Get returns the game with id.
func (r *GameRepository) Get(ctx context.Context, id string) (games.Game, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return games.Game{}, false, err
	}
	i := indexOf(items, id, gameID)
	if i < 0 {
		return games.Game{}, false, nil
	}
	return items[i], true, nil
}

// Create appends a new game built from validated input.
func (r *GameRepository) Create(ctx context.Context, in games.Input) (games.Game, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return games.Game{}, err
	}
	g := games.NewGame(r.opts.newID(), in, r.opts.now())
	if err := r.docs.Save(ctx, append(items, g)); err != nil {
		return games.Game{}, err
	}
	return g, nil
}

// Update applies patch to the game with id.
func (r *GameRepository) Update(ctx context.Context, id string, patch games.Patch) (games.Game, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return games.Game{}, false, err
	}
	i := indexOf(items, id, gameID)
	if i < 0 {
		return games.Game{}, false, nil
	}
	patch.Apply(&items[i], r.opts.now())
	if err := r.docs.Save(ctx, items); err != nil {
		return games.Game{}, false, err
	}
	return items[i], true, nil
}

// Delete removes the game with id.
func (r *GameRepository) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id, gameID)
	if i < 0 {
		return false, nil
	}
	if err := r.docs.Save(ctx, append(items[:i], items[i+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

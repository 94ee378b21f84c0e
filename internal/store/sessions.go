package store

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/domain/sessions"
)

// SessionRepository persists training sessions.
type SessionRepository struct {
	docs *docstore.Collection[sessions.Session]
	opts options
}

// NewSessionRepository binds the training-sessions collection.
func NewSessionRepository(docs *docstore.Store, opts ...Option) *SessionRepository {
	return &SessionRepository{
		docs: docstore.NewCollection[sessions.Session](docs, SessionsCollection),
		opts: buildOptions(opts),
	}
}

func sessionID(s sessions.Session) string { return s.ID }

// List returns every training session in stored order.
func (r *SessionRepository) List(ctx context.Context) ([]sessions.Session, error) {
	return r.docs.Load(ctx)
}

// Get returns the session with id.
func (r *SessionRepository) Get(ctx context.Context, id string) (sessions.Session, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return sessions.Session{}, false, err
	}
	i := indexOf(items, id, sessionID)
	if i < 0 {
		return sessions.Session{}, false, nil
	}
	return items[i], true, nil
}

// Create appends one session built from validated input.
func (r *SessionRepository) Create(ctx context.Context, in sessions.Input) (sessions.Session, error) {
	created, err := r.CreateMany(ctx, []sessions.Input{in})
	if err != nil {
		return sessions.Session{}, err
	}
	return created[0], nil
}

// CreateMany appends a batch of sessions with a single write.
func (r *SessionRepository) CreateMany(ctx context.Context, inputs []sessions.Input) ([]sessions.Session, error) {
	if len(inputs) == 0 {
		return []sessions.Session{}, nil
	}
	items, err := r.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := r.opts.now()
	created := make([]sessions.Session, 0, len(inputs))
	for _, in := range inputs {
		created = append(created, sessions.NewSession(r.opts.newID(), in, now))
	}
	if err := r.docs.Save(ctx, append(items, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies patch to the session with id.
func (r *SessionRepository) Update(ctx context.Context, id string, patch sessions.Patch) (sessions.Session, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return sessions.Session{}, false, err
	}
	i := indexOf(items, id, sessionID)
	if i < 0 {
		return sessions.Session{}, false, nil
	}
	patch.Apply(&items[i], r.opts.now())
	if err := r.docs.Save(ctx, items); err != nil {
		return sessions.Session{}, false, err
	}
	return items[i], true, nil
}

// Delete removes the session with id. Attendance records are left in place.
func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id, sessionID)
	if i < 0 {
		return false, nil
	}
	if err := r.docs.Save(ctx, append(items[:i], items[i+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByRecurringID removes every session of a series and reports how many were removed.
func (r *SessionRepository) DeleteByRecurringID(ctx context.Context, recurringID string) (int, error) {
	if recurringID == "" {
		return 0, nil
	}
	items, err := r.docs.Load(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]sessions.Session, 0, len(items))
	for _, s := range items {
		if s.RecurringID != recurringID {
			kept = append(kept, s)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.docs.Save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ReplaceAll overwrites the collection, used after renumbering titles.
func (r *SessionRepository) ReplaceAll(ctx context.Context, all []sessions.Session) error {
	return r.docs.Save(ctx, all)
}


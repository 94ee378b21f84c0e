package store

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
	"github.com/preston-bernstein/team-ledger/internal/domain/attendance"
)

// AttendanceRepository persists attendance records, unique per (player, session).
type AttendanceRepository struct {
	docs *docstore.Collection[attendance.Record]
	opts options
}

// NewAttendanceRepository binds the attendance collection.
func NewAttendanceRepository(docs *docstore.Store, opts ...Option) *AttendanceRepository {
	return &AttendanceRepository{
		docs: docstore.NewCollection[attendance.Record](docs, AttendanceCollection),
		opts: buildOptions(opts),
	}
}

func recordID(r attendance.Record) string { return r.ID }

// List returns the records matching filter.
func (r *AttendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]attendance.Record, 0, len(items))
	for _, rec := range items {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Upsert creates or updates the record for the input's (player, session) key.
func (r *AttendanceRepository) Upsert(ctx context.Context, in attendance.Input) (attendance.Record, error) {
	out, err := r.UpsertMany(ctx, []attendance.Input{in})
	if err != nil {
		return attendance.Record{}, err
	}
	return out[0], nil
}

// UpsertMany applies a batch of upserts with a single write. Results follow input order.
func (r *AttendanceRepository) UpsertMany(ctx context.Context, inputs []attendance.Input) ([]attendance.Record, error) {
	if len(inputs) == 0 {
		return []attendance.Record{}, nil
	}
	items, err := r.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[attendance.Key]int, len(items))
	for i, rec := range items {
		byKey[rec.Key()] = i
	}

	now := r.opts.now()
	touched := make([]int, 0, len(inputs))
	for _, in := range inputs {
		if i, ok := byKey[in.Key()]; ok {
			in.Merge(&items[i])
			touched = append(touched, i)
			continue
		}
		items = append(items, attendance.NewRecord(r.opts.newID(), in, now))
		byKey[in.Key()] = len(items) - 1
		touched = append(touched, len(items)-1)
	}
	if err := r.docs.Save(ctx, items); err != nil {
		return nil, err
	}

	out := make([]attendance.Record, 0, len(touched))
	for _, i := range touched {
		out = append(out, items[i])
	}
	return out, nil
}

// UpdateStatus sets status, and notes when non-nil, on the record with id.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status, notes *string) (attendance.Record, bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return attendance.Record{}, false, err
	}
	i := indexOf(items, id, recordID)
	if i < 0 {
		return attendance.Record{}, false, nil
	}
	items[i].Status = status
	if notes != nil {
		items[i].Notes = *notes
	}
	if err := r.docs.Save(ctx, items); err != nil {
		return attendance.Record{}, false, err
	}
	return items[i], true, nil
}

// DeleteByKey removes the record for (playerID, sessionID).
func (r *AttendanceRepository) DeleteByKey(ctx context.Context, playerID, sessionID string) (bool, error) {
	items, err := r.docs.Load(ctx)
	if err != nil {
		return false, err
	}
	key := attendance.Key{PlayerID: playerID, SessionID: sessionID}
	for i, rec := range items {
		if rec.Key() != key {
			continue
		}
		if err := r.docs.Save(ctx, append(items[:i], items[i+1:]...)); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

package attendance

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/team-ledger/internal/domain"
	domainattendance "github.com/preston-bernstein/team-ledger/internal/domain/attendance"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

// Store defines the contract for persisting attendance.
type Store interface {
	List(ctx context.Context, filter domainattendance.Filter) ([]domainattendance.Record, error)
	Upsert(ctx context.Context, in domainattendance.Input) (domainattendance.Record, error)
	UpdateStatus(ctx context.Context, id string, status domainattendance.Status, notes *string) (domainattendance.Record, bool, error)
	DeleteByKey(ctx context.Context, playerID, sessionID string) (bool, error)
}

// Service records player attendance, one record per (player, session).
type Service struct {
	store  Store
	lock   sync.Locker
	logger *slog.Logger
}

// NewService constructs a Service. lock is the ledger lock shared by every service.
func NewService(store Store, lock sync.Locker, logger *slog.Logger) *Service {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Service{store: store, lock: lock, logger: logger}
}

// ListAttendance returns the records matching filter.
func (s *Service) ListAttendance(ctx context.Context, filter domainattendance.Filter) ([]domainattendance.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.List(ctx, filter)
}

// RecordAttendance upserts the record for (playerId, sessionId). An existing
// record keeps its id and createdAt; notes change only when provided.
func (s *Service) RecordAttendance(ctx context.Context, in domainattendance.Input) (domainattendance.Record, error) {
	if err := in.Validate(); err != nil {
		return domainattendance.Record{}, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	rec, err := s.store.Upsert(ctx, in)
	if err != nil {
		return domainattendance.Record{}, err
	}
	logging.Info(ctx, s.logger, "attendance recorded",
		logging.FieldPlayerID, rec.PlayerID,
		logging.FieldSessionID, rec.SessionID,
		logging.FieldRecordID, rec.ID,
	)
	return rec, nil
}

// UpdateAttendance sets status, and notes when non-nil, on the record with id.
func (s *Service) UpdateAttendance(ctx context.Context, id string, status string, notes *string) (domainattendance.Record, bool, error) {
	st, err := domainattendance.ParseStatus(status)
	if err != nil {
		return domainattendance.Record{}, false, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.UpdateStatus(ctx, id, st, notes)
}

// DeleteAttendance removes the record for (playerID, sessionID).
func (s *Service) DeleteAttendance(ctx context.Context, playerID, sessionID string) (bool, error) {
	if playerID == "" {
		return false, domain.NewInputError("playerId", "is required")
	}
	if sessionID == "" {
		return false, domain.NewInputError("sessionId", "is required")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.DeleteByKey(ctx, playerID, sessionID)
}

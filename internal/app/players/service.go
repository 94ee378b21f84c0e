package players

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/domain/attendance"
	domainplayers "github.com/preston-bernstein/team-ledger/internal/domain/players"
	"github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/timeutil"
)

// Store defines the contract for persisting players.
type Store interface {
	List(ctx context.Context) ([]domainplayers.Player, error)
	Get(ctx context.Context, id string) (domainplayers.Player, bool, error)
	Create(ctx context.Context, in domainplayers.Input) (domainplayers.Player, error)
	Update(ctx context.Context, id string, patch domainplayers.Patch) (domainplayers.Player, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionLister reads the training calendar for the attendance back-fill.
type SessionLister interface {
	List(ctx context.Context) ([]sessions.Session, error)
}

// AttendanceWriter stores back-filled attendance in one batch.
type AttendanceWriter interface {
	UpsertMany(ctx context.Context, inputs []attendance.Input) ([]attendance.Record, error)
}

// Deps groups the collaborators of Service.
type Deps struct {
	Store      Store
	Sessions   SessionLister
	Attendance AttendanceWriter
	// Lock is the ledger lock shared by every service.
	Lock     sync.Locker
	Logger   *slog.Logger
	Location *time.Location
}

// Service coordinates roster operations and the attendance back-fill for new players.
type Service struct {
	store      Store
	sessions   SessionLister
	attendance AttendanceWriter
	lock       sync.Locker
	logger     *slog.Logger
	loc        *time.Location
	now        func() time.Time
}

// NewService constructs a Service.
func NewService(deps Deps) *Service {
	lock := deps.Lock
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Service{
		store:      deps.Store,
		sessions:   deps.Sessions,
		attendance: deps.Attendance,
		lock:       lock,
		logger:     deps.Logger,
		loc:        deps.Location,
		now:        time.Now,
	}
}

// Players returns the roster.
func (s *Service) Players(ctx context.Context) ([]domainplayers.Player, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.List(ctx)
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(ctx context.Context, id string) (domainplayers.Player, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Get(ctx, id)
}

// CreatePlayer stores a new player, then marks them NOT_APPLICABLE for every
// training session dated before today. The player is persisted even when the
// back-fill fails; the error is still returned.
func (s *Service) CreatePlayer(ctx context.Context, in domainplayers.Input) (domainplayers.Player, error) {
	if err := in.Validate(); err != nil {
		return domainplayers.Player{}, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	p, err := s.store.Create(ctx, in)
	if err != nil {
		return domainplayers.Player{}, err
	}
	logging.Info(ctx, s.logger, "player created", logging.FieldPlayerID, p.ID)

	n, err := s.backfill(ctx, p.ID)
	if err != nil {
		logging.Error(ctx, s.logger, "attendance back-fill failed", err, logging.FieldPlayerID, p.ID)
		return p, fmt.Errorf("back-fill attendance for player %s: %w", p.ID, err)
	}
	if n > 0 {
		logging.Info(ctx, s.logger, "attendance back-filled", logging.FieldPlayerID, p.ID, logging.FieldCount, n)
	}
	return p, nil
}

func (s *Service) backfill(ctx context.Context, playerID string) (int, error) {
	if s.sessions == nil || s.attendance == nil {
		return 0, nil
	}
	all, err := s.sessions.List(ctx)
	if err != nil {
		return 0, err
	}
	today := timeutil.Today(s.now(), s.loc)

	var inputs []attendance.Input
	for _, sess := range all {
		if sess.Date >= today {
			continue
		}
		inputs = append(inputs, attendance.Input{
			PlayerID:    playerID,
			SessionID:   sess.ID,
			SessionType: attendance.SessionTraining,
			Status:      attendance.StatusNotApplicable,
		})
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	if _, err := s.attendance.UpsertMany(ctx, inputs); err != nil {
		return 0, err
	}
	return len(inputs), nil
}

// UpdatePlayer applies patch to the player with id.
func (s *Service) UpdatePlayer(ctx context.Context, id string, patch domainplayers.Patch) (domainplayers.Player, bool, error) {
	if err := patch.Validate(); err != nil {
		return domainplayers.Player{}, false, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Update(ctx, id, patch)
}

// DeletePlayer removes the player with id. Attendance records are kept.
func (s *Service) DeletePlayer(ctx context.Context, id string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		logging.Info(ctx, s.logger, "player deleted", logging.FieldPlayerID, id)
	}
	return removed, nil
}

package sessions

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/recurrence"
	"github.com/preston-bernstein/team-ledger/internal/titles"
)

// Store defines the contract for persisting training sessions.
type Store interface {
	List(ctx context.Context) ([]domainsessions.Session, error)
	Get(ctx context.Context, id string) (domainsessions.Session, bool, error)
	CreateMany(ctx context.Context, inputs []domainsessions.Input) ([]domainsessions.Session, error)
	Update(ctx context.Context, id string, patch domainsessions.Patch) (domainsessions.Session, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByRecurringID(ctx context.Context, recurringID string) (int, error)
	ReplaceAll(ctx context.Context, all []domainsessions.Session) error
}

// Service coordinates the training calendar: recurrence expansion, titling and renumbering.
type Service struct {
	store          Store
	lock           sync.Locker
	logger         *slog.Logger
	now            func() time.Time
	newRecurringID func() string
}

// NewService constructs a Service. lock is the ledger lock shared by every service.
func NewService(store Store, lock sync.Locker, logger *slog.Logger) *Service {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Service{
		store:          store,
		lock:           lock,
		logger:         logger,
		now:            time.Now,
		newRecurringID: uuid.NewString,
	}
}

// Sessions returns every training session.
func (s *Service) Sessions(ctx context.Context) ([]domainsessions.Session, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.List(ctx)
}

// SessionByID returns a single session if present.
func (s *Service) SessionByID(ctx context.Context, id string) (domainsessions.Session, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Get(ctx, id)
}

// CreateSession stores the sessions described by in and returns all of them.
// Recurring requests expand into a series sharing a fresh recurring id; any
// other request becomes one standalone session. Untitled sessions are titled
// by chronological position.
func (s *Service) CreateSession(ctx context.Context, in domainsessions.Input) ([]domainsessions.Session, error) {
	in.RecurringID = ""
	if err := in.Validate(); err != nil {
		return nil, err
	}

	recurringID := ""
	if recurrence.IsRecurring(in) {
		recurringID = s.newRecurringID()
	}
	occurrences, err := recurrence.Expand(in, recurringID)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		logging.Info(ctx, s.logger, "recurrence produced no sessions", logging.FieldDate, in.Date)
		return []domainsessions.Session{}, nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateMany(ctx, titles.AssignBatch(existing, occurrences))
	if err != nil {
		return nil, err
	}

	if recurringID != "" {
		logging.Info(ctx, s.logger, "session series created",
			logging.FieldRecurringID, recurringID,
			logging.FieldCount, len(created),
		)
	} else {
		logging.Info(ctx, s.logger, "session created", logging.FieldSessionID, created[0].ID)
	}
	return created, nil
}

// UpdateSession applies patch to the session with id.
func (s *Service) UpdateSession(ctx context.Context, id string, patch domainsessions.Patch) (domainsessions.Session, bool, error) {
	if err := patch.Validate(); err != nil {
		return domainsessions.Session{}, false, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Update(ctx, id, patch)
}

// DeleteSession removes the session with id. Attendance records are kept.
func (s *Service) DeleteSession(ctx context.Context, id string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Delete(ctx, id)
}

// DeleteByRecurringID removes a whole series and reports how many sessions were removed.
func (s *Service) DeleteByRecurringID(ctx context.Context, recurringID string) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.store.DeleteByRecurringID(ctx, recurringID)
	if err != nil {
		return 0, err
	}
	logging.Info(ctx, s.logger, "session series deleted",
		logging.FieldRecurringID, recurringID,
		logging.FieldCount, n,
	)
	return n, nil
}

// RenumberTitles retitles every session by chronological rank and reports how
// many titles changed. Only changed sessions get a new updatedAt, and nothing
// is written when every title is already correct.
func (s *Service) RenumberTitles(ctx context.Context) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	all, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	renumbered, changed := titles.Renumber(all)
	if changed == 0 {
		return 0, nil
	}
	now := s.now()
	for i := range renumbered {
		if renumbered[i].Title != all[i].Title {
			renumbered[i].UpdatedAt = now
		}
	}
	if err := s.store.ReplaceAll(ctx, renumbered); err != nil {
		return 0, err
	}
	logging.Info(ctx, s.logger, "session titles renumbered", logging.FieldCount, changed)
	return changed, nil
}

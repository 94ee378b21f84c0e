package drills

import (
	"context"
	"log/slog"
	"sync"

	domaindrills "github.com/preston-bernstein/team-ledger/internal/domain/drills"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

// Store defines the contract for persisting drills.
type Store interface {
	List(ctx context.Context) ([]domaindrills.Drill, error)
	Templates(ctx context.Context) ([]domaindrills.Drill, error)
	Get(ctx context.Context, id string) (domaindrills.Drill, bool, error)
	Create(ctx context.Context, in domaindrills.Input) (domaindrills.Drill, error)
	Update(ctx context.Context, id string, patch domaindrills.Patch) (domaindrills.Drill, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service coordinates the drill library.
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

// Drills returns every drill.
func (s *Service) Drills(ctx context.Context) ([]domaindrills.Drill, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.List(ctx)
}

// DrillTemplates returns drills flagged as templates.
func (s *Service) DrillTemplates(ctx context.Context) ([]domaindrills.Drill, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Templates(ctx)
}

// DrillByID returns a single drill if present.
func (s *Service) DrillByID(ctx context.Context, id string) (domaindrills.Drill, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Get(ctx, id)
}

// CreateDrill validates and stores a new drill.
func (s *Service) CreateDrill(ctx context.Context, in domaindrills.Input) (domaindrills.Drill, error) {
	if err := in.Validate(); err != nil {
		return domaindrills.Drill{}, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	d, err := s.store.Create(ctx, in)
	if err != nil {
		return domaindrills.Drill{}, err
	}
	logging.Info(ctx, s.logger, "drill created", logging.FieldRecordID, d.ID)
	return d, nil
}

// UpdateDrill applies patch to the drill with id.
func (s *Service) UpdateDrill(ctx context.Context, id string, patch domaindrills.Patch) (domaindrills.Drill, bool, error) {
	if err := patch.Validate(); err != nil {
		return domaindrills.Drill{}, false, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Update(ctx, id, patch)
}

// DeleteDrill removes the drill with id.
func (s *Service) DeleteDrill(ctx context.Context, id string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Delete(ctx, id)
}

package games

import (
	"context"
	"log/slog"
	"sync"

	domaingames "github.com/preston-bernstein/team-ledger/internal/domain/games"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

// Store defines the contract for persisting and retrieving games.
type Store interface {
	List(ctx context.Context) ([]domaingames.Game, error)
	Get(ctx context.Context, id string) (domaingames.Game, bool, error)
	Create(ctx context.Context, in domaingames.Input) (domaingames.Game, error)
	Update(ctx context.Context, id string, patch domaingames.Patch) (domaingames.Game, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service coordinates game operations using a Store.
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

// Games returns the schedule.
func (s *Service) Games(ctx context.Context) ([]domaingames.Game, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.List(ctx)
}

// GameByID returns a single game if present.
func (s *Service) GameByID(ctx context.Context, id string) (domaingames.Game, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Get(ctx, id)
}

// CreateGame validates and stores a new game.
func (s *Service) CreateGame(ctx context.Context, in domaingames.Input) (domaingames.Game, error) {
	if err := in.Validate(); err != nil {
		return domaingames.Game{}, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	g, err := s.store.Create(ctx, in)
	if err != nil {
		return domaingames.Game{}, err
	}
	logging.Info(ctx, s.logger, "game created", logging.FieldRecordID, g.ID, logging.FieldDate, g.Date)
	return g, nil
}

// UpdateGame applies patch to the game with id.
func (s *Service) UpdateGame(ctx context.Context, id string, patch domaingames.Patch) (domaingames.Game, bool, error) {
	if err := patch.Validate(); err != nil {
		return domaingames.Game{}, false, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Update(ctx, id, patch)
}

// DeleteGame removes the game with id.
func (s *Service) DeleteGame(ctx context.Context, id string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store.Delete(ctx, id)
}

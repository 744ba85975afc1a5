package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/storage"
)

// Storage is an in-memory fixture ledger; it lives as long as the process
type Storage struct {
	mu       sync.RWMutex
	fixtures map[fixtureKey]*model.Fixture
}

type fixtureKey struct {
	kind model.FixtureKind
	id   string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		fixtures: make(map[fixtureKey]*model.Fixture),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveFixture(ctx context.Context, fixture *model.Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *fixture
	s.fixtures[fixtureKey{fixture.Kind, fixture.ID}] = &stored
	return nil
}

func (s *Storage) GetFixture(ctx context.Context, kind model.FixtureKind, id string) (*model.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fixture, ok := s.fixtures[fixtureKey{kind, id}]
	if !ok {
		return nil, model.ErrFixtureNotFound
	}
	out := *fixture
	return &out, nil
}

func (s *Storage) DeleteFixture(ctx context.Context, kind model.FixtureKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fixtures, fixtureKey{kind, id})
	return nil
}

func (s *Storage) ListFixtures(ctx context.Context) ([]*model.Fixture, error) {
	return s.list(func(*model.Fixture) bool { return true }), nil
}

func (s *Storage) ListFixturesForRun(ctx context.Context, runID string) ([]*model.Fixture, error) {
	return s.list(func(f *model.Fixture) bool { return f.RunID == runID }), nil
}

// Close is a no-op
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) list(keep func(*model.Fixture) bool) []*model.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixtures := make([]*model.Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		if keep(f) {
			out := *f
			fixtures = append(fixtures, &out)
		}
	}
	sort.SliceStable(fixtures, func(i, j int) bool {
		if fixtures[i].CreatedAt.Equal(fixtures[j].CreatedAt) {
			return fixtures[i].ID < fixtures[j].ID
		}
		return fixtures[i].CreatedAt.Before(fixtures[j].CreatedAt)
	})
	return fixtures
}

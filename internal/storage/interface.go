package storage

import (
	"context"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Storage persists the fixture ledger: backend resources a suite run has
// created and not yet torn down
type Storage interface {
	SaveFixture(ctx context.Context, fixture *model.Fixture) error
	GetFixture(ctx context.Context, kind model.FixtureKind, id string) (*model.Fixture, error)
	DeleteFixture(ctx context.Context, kind model.FixtureKind, id string) error

	// ListFixtures returns every recorded fixture, oldest first
	ListFixtures(ctx context.Context) ([]*model.Fixture, error)
	// ListFixturesForRun returns the fixtures recorded by one run, oldest first
	ListFixturesForRun(ctx context.Context, runID string) ([]*model.Fixture, error)

	Close() error
}

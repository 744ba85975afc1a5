// Package fixture tracks the backend resources a suite run creates so that
// every player and tournament is torn down, even when a scenario aborts.
//
// A Scope holds the fixtures of one scenario and releases them in reverse
// acquisition order on Close. Each acquisition is also written to the ledger
// (storage.Storage) so that fixtures leaked by a crashed process can be
// swept later.
package fixture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/gameapi-e2e/internal/client"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/clock"
	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/storage"
)

// ErrOwnerBlocked marks a player left in place because one of its
// tournaments could not be ended
var ErrOwnerBlocked = errors.New("owner has a tournament that is still running")

// DefaultReleaseTimeout bounds the teardown calls made by Scope.Close
const DefaultReleaseTimeout = 30 * time.Second

// Manager creates scopes bound to one suite run
type Manager struct {
	api    client.API
	ledger storage.Storage
	clock  clock.Clock
	logger *slog.Logger
	runID  string

	releaseTimeout time.Duration
}

// ManagerConfig holds the Manager's collaborators
type ManagerConfig struct {
	API    client.API
	Ledger storage.Storage
	Clock  clock.Clock
	Logger *slog.Logger
	// RunID groups the ledger entries of one run; generated when empty
	RunID          string
	ReleaseTimeout time.Duration
}

// NewManager creates a new Manager
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.ReleaseTimeout <= 0 {
		cfg.ReleaseTimeout = DefaultReleaseTimeout
	}

	return &Manager{
		api:            cfg.API,
		ledger:         cfg.Ledger,
		clock:          cfg.Clock,
		logger:         cfg.Logger.With(slog.String("run_id", cfg.RunID)),
		runID:          cfg.RunID,
		releaseTimeout: cfg.ReleaseTimeout,
	}
}

// RunID identifies this run's ledger entries
func (m *Manager) RunID() string {
	return m.runID
}

// NewScope starts an empty scope
func (m *Manager) NewScope() *Scope {
	return &Scope{manager: m}
}

// record writes a ledger entry. Failures only cost sweepability, so they
// are logged rather than returned.
func (m *Manager) record(ctx context.Context, kind model.FixtureKind, id, playerID string) {
	if m.ledger == nil {
		return
	}
	fixture := &model.Fixture{
		Kind:      kind,
		ID:        id,
		PlayerID:  playerID,
		RunID:     m.runID,
		CreatedAt: m.clock.Now(),
	}
	if err := m.ledger.SaveFixture(ctx, fixture); err != nil {
		m.logger.Warn("failed to record fixture",
			slog.String("kind", string(kind)),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}

// Forget drops a ledger entry. Missing entries are not an error.
func (m *Manager) Forget(ctx context.Context, kind model.FixtureKind, id string) {
	if m.ledger == nil {
		return
	}
	if err := m.ledger.DeleteFixture(ctx, kind, id); err != nil {
		m.logger.Warn("failed to remove fixture from ledger",
			slog.String("kind", string(kind)),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}

// exchange performs one call and decodes its envelope
func (m *Manager) exchange(ctx context.Context, op model.Operation, params model.Params) (*model.Response, error) {
	raw, err := client.Call(ctx, m.api, op, params)
	if err != nil {
		return nil, err
	}
	resp, err := client.Decode(raw)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

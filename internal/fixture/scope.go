package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// held is one acquired fixture awaiting release
type held struct {
	kind model.FixtureKind
	// id is the value the backend returned, passed back as-is on release
	id       any
	key      string
	playerID string
	released bool
}

// Scope owns the fixtures acquired by one scenario
type Scope struct {
	manager *Manager

	mu   sync.Mutex
	held []*held
}

// Call performs an operation that neither creates nor destroys a fixture
func (s *Scope) Call(ctx context.Context, op model.Operation, params model.Params) (*model.Response, error) {
	return s.manager.exchange(ctx, op, params)
}

// OpenSession opens a session and, when the backend reports a player-id,
// holds the player until it is deleted or the scope closes
func (s *Scope) OpenSession(ctx context.Context, params model.Params) (*model.Response, error) {
	resp, err := s.manager.exchange(ctx, model.OpOpenSession, params)
	if err != nil {
		return nil, err
	}
	if resp.OK() && resp.Has(model.FieldPlayerID) {
		s.acquire(ctx, model.FixturePlayer, resp.Value(model.FieldPlayerID), "")
	}
	return resp, nil
}

// StartTournament starts a tournament and holds it until it is ended or the
// scope closes
func (s *Scope) StartTournament(ctx context.Context, params model.Params) (*model.Response, error) {
	resp, err := s.manager.exchange(ctx, model.OpStartTournament, params)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.acquire(ctx, model.FixtureTournament, params[model.ParamTournamentID], idString(params[model.ParamPlayerID]))
	}
	return resp, nil
}

// EndTournament ends a tournament; an ok response releases it
func (s *Scope) EndTournament(ctx context.Context, params model.Params) (*model.Response, error) {
	resp, err := s.manager.exchange(ctx, model.OpEndTournament, params)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.markReleased(ctx, model.FixtureTournament, idString(params[model.ParamTournamentID]))
	}
	return resp, nil
}

// DeletePlayer deletes a player; an ok response releases it
func (s *Scope) DeletePlayer(ctx context.Context, params model.Params) (*model.Response, error) {
	resp, err := s.manager.exchange(ctx, model.OpDeletePlayer, params)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.markReleased(ctx, model.FixturePlayer, idString(params[model.ParamPlayerID]))
	}
	return resp, nil
}

// Held returns the number of fixtures not yet released
func (s *Scope) Held() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, h := range s.held {
		if !h.released {
			n++
		}
	}
	return n
}

// Close releases every fixture still held, newest first, so tournaments end
// before their owner is deleted. It runs even when ctx is already cancelled.
// A player whose tournament failed to end is not deleted. Fixtures that are
// not released stay in the ledger for a later sweep.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	pending := make([]*held, 0, len(s.held))
	for i := len(s.held) - 1; i >= 0; i-- {
		if h := s.held[i]; !h.released {
			h.released = true
			pending = append(pending, h)
		}
	}
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.manager.releaseTimeout)
	defer cancel()

	// owners of tournaments that could not be ended stay alive
	blocked := make(map[string]bool)
	var errs []error
	for _, h := range pending {
		if h.kind == model.FixturePlayer && blocked[h.key] {
			s.manager.logger.Warn("kept player whose tournament is still running",
				slog.String("id", h.key),
			)
			errs = append(errs, fmt.Errorf("%w: %s %s: %w", model.ErrReleaseFailed, h.kind, h.key, ErrOwnerBlocked))
			continue
		}
		if err := s.release(ctx, h); err != nil {
			if h.kind == model.FixtureTournament && h.playerID != "" {
				blocked[h.playerID] = true
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Scope) release(ctx context.Context, h *held) error {
	var (
		op     model.Operation
		params model.Params
	)
	switch h.kind {
	case model.FixtureTournament:
		op, params = model.OpEndTournament, model.Params{model.ParamTournamentID: h.id}
	default:
		op, params = model.OpDeletePlayer, model.Params{model.ParamPlayerID: h.id}
	}

	resp, err := s.manager.exchange(ctx, op, params)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", model.ErrReleaseFailed, h.kind, h.key, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: %s %s: %s", model.ErrReleaseFailed, h.kind, h.key, resp.Message)
	}

	s.manager.logger.Debug("fixture released",
		slog.String("kind", string(h.kind)),
		slog.String("id", h.key),
	)
	s.manager.Forget(ctx, h.kind, h.key)
	return nil
}

func (s *Scope) acquire(ctx context.Context, kind model.FixtureKind, id any, playerID string) {
	key := idString(id)

	s.mu.Lock()
	s.held = append(s.held, &held{kind: kind, id: id, key: key, playerID: playerID})
	s.mu.Unlock()

	s.manager.record(ctx, kind, key, playerID)
}

func (s *Scope) markReleased(ctx context.Context, kind model.FixtureKind, key string) {
	s.mu.Lock()
	found := false
	for _, h := range s.held {
		if h.kind == kind && h.key == key && !h.released {
			h.released = true
			found = true
		}
	}
	s.mu.Unlock()

	if found {
		s.manager.Forget(ctx, kind, key)
	}
}

// idString renders an id for ledger keys; the original value is kept for calls
func idString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

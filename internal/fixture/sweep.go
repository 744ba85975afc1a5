package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// SweepOptions narrows which ledger entries a sweep tears down
type SweepOptions struct {
	// RunID limits the sweep to one run; empty sweeps every run
	RunID string
	// OlderThan skips entries younger than this, so live runs are left alone
	OlderThan time.Duration
	// Concurrency caps in-flight backend calls per phase
	Concurrency int
	// DryRun lists what would be swept without calling the backend
	DryRun bool
}

// SweepReport summarises a sweep
type SweepReport struct {
	Candidates []*model.Fixture `json:"candidates"`
	Released   int              `json:"released"`
	// Gone counts entries the backend no longer knew about
	Gone   int `json:"gone"`
	Failed int `json:"failed"`
	// Skipped counts players kept because their tournament could not be ended
	Skipped int `json:"skipped"`
}

// Sweep tears down fixtures left in the ledger by runs that did not finish
// cleanup. Tournaments are ended before any player is deleted, and a player
// whose tournament could not be ended is left alone. Entries are removed once
// the backend confirms the release or reports the resource gone.
func (m *Manager) Sweep(ctx context.Context, opts SweepOptions) (*SweepReport, error) {
	if m.ledger == nil {
		return &SweepReport{}, nil
	}

	var (
		fixtures []*model.Fixture
		err      error
	)
	if opts.RunID != "" {
		fixtures, err = m.ledger.ListFixturesForRun(ctx, opts.RunID)
	} else {
		fixtures, err = m.ledger.ListFixtures(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	cutoff := m.clock.Now().Add(-opts.OlderThan)
	var tournaments, players []*model.Fixture
	for _, f := range fixtures {
		if opts.OlderThan > 0 && f.CreatedAt.After(cutoff) {
			continue
		}
		switch f.Kind {
		case model.FixtureTournament:
			tournaments = append(tournaments, f)
		case model.FixturePlayer:
			players = append(players, f)
		}
	}

	report := &SweepReport{Candidates: append(append([]*model.Fixture{}, tournaments...), players...)}
	if opts.DryRun {
		return report, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var mu sync.Mutex
	// owners of tournaments that are still running after phase one
	blocked := make(map[string]bool)
	for _, phase := range [][]*model.Fixture{tournaments, players} {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, f := range phase {
			if f.Kind == model.FixturePlayer && blocked[f.ID] {
				m.logger.Warn("sweep kept player whose tournament is still running",
					slog.String("id", f.ID),
				)
				report.Skipped++
				continue
			}
			f := f
			g.Go(func() error {
				outcome, err := m.sweepOne(gctx, f)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				switch outcome {
				case sweepReleased:
					report.Released++
				case sweepGone:
					report.Gone++
				default:
					report.Failed++
					if f.Kind == model.FixtureTournament && f.PlayerID != "" {
						blocked[f.PlayerID] = true
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report, err
		}
	}

	m.logger.Info("sweep complete",
		slog.Int("released", report.Released),
		slog.Int("gone", report.Gone),
		slog.Int("failed", report.Failed),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

type sweepOutcome int

const (
	sweepReleased sweepOutcome = iota
	sweepGone
	sweepFailed
)

func (m *Manager) sweepOne(ctx context.Context, f *model.Fixture) (sweepOutcome, error) {
	var (
		op     model.Operation
		params model.Params
	)
	switch f.Kind {
	case model.FixtureTournament:
		op, params = model.OpEndTournament, model.Params{model.ParamTournamentID: f.ID}
	default:
		op, params = model.OpDeletePlayer, model.Params{model.ParamPlayerID: f.ID}
	}

	resp, err := m.exchange(ctx, op, params)
	if err != nil {
		// transport failures abort the sweep; the entry stays for next time
		return sweepFailed, fmt.Errorf("sweep %s %s: %w", f.Kind, f.ID, err)
	}

	switch {
	case resp.OK():
		m.Forget(ctx, f.Kind, f.ID)
		return sweepReleased, nil
	case isNotFound(resp.Message):
		m.Forget(ctx, f.Kind, f.ID)
		return sweepGone, nil
	default:
		m.logger.Warn("sweep could not release fixture",
			slog.String("kind", string(f.Kind)),
			slog.String("id", f.ID),
			slog.String("message", resp.Message),
		)
		return sweepFailed, nil
	}
}

func isNotFound(message string) bool {
	return strings.Contains(strings.ToLower(message), "not found")
}

package fixture_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/mocks"
	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/storage/memory"
	"github.com/mcoot/gameapi-e2e/internal/testutil"
)

const (
	okOpen    = `{"status":"ok","data":[{"player-id":"p1","session-id":"s1"}]}`
	okStatus  = `{"status":"ok"}`
	notFound  = `{"status":"error","message":"Player not found"}`
	forbidden = `{"status":"error","message":"Forbidden"}`
)

var openParams = model.Params{"name": "DeviceX", "platform": 1, "version": "1.0", "region": "us"}

type harness struct {
	api    *mocks.MockAPI
	ledger *memory.Storage
	clock  *mocks.MockClock
	mgr    *fixture.Manager
	ctx    context.Context

	mu    sync.Mutex
	calls []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:    &mocks.MockAPI{},
		ledger: memory.New(),
		clock:  mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		ctx:    context.Background(),
	}
	h.mgr = fixture.NewManager(fixture.ManagerConfig{
		API:    h.api,
		Ledger: h.ledger,
		Clock:  h.clock,
		Logger: testutil.NopLogger(),
		RunID:  "run-1",
	})
	t.Cleanup(func() { h.api.AssertExpectations(t) })
	return h
}

// track records the call order of the named operation
func (h *harness) track(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.calls = append(h.calls, name)
	}
}

func (h *harness) ledgerLen(t *testing.T) int {
	t.Helper()
	all, err := h.ledger.ListFixtures(h.ctx)
	require.NoError(t, err)
	return len(all)
}

func TestOpenSessionHoldsPlayerUntilClose(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p1"}).Return(okStatus, nil).Once()

	scope := h.mgr.NewScope()
	resp, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, 1, scope.Held())

	f, err := h.ledger.GetFixture(h.ctx, model.FixturePlayer, "p1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", f.RunID)

	require.NoError(t, scope.Close(h.ctx))
	assert.Equal(t, 0, scope.Held())
	assert.Equal(t, 0, h.ledgerLen(t))

	// a second close has nothing left to release
	require.NoError(t, scope.Close(h.ctx))
}

func TestRejectedOpenSessionHoldsNothing(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, mock.Anything).
		Return(`{"status":"error","message":"Invalid platform ID"}`, nil)

	scope := h.mgr.NewScope()
	resp, err := scope.OpenSession(h.ctx, model.Params{"platform": 9999})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, 0, scope.Held())
	require.NoError(t, scope.Close(h.ctx))
	assert.Equal(t, 0, h.ledgerLen(t))
}

func TestExplicitTeardownReleases(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("StartTournament", mock.Anything, mock.Anything).Return(okStatus, nil)
	h.api.On("EndTournament", mock.Anything, model.Params{"tournament-id": "T1"}).Return(okStatus, nil).Once()
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p1"}).Return(okStatus, nil).Once()

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	_, err = scope.StartTournament(h.ctx, model.Params{"player-id": "p1", "session-id": "s1", "tournament-id": "T1"})
	require.NoError(t, err)
	assert.Equal(t, 2, scope.Held())
	assert.Equal(t, 2, h.ledgerLen(t))

	_, err = scope.EndTournament(h.ctx, model.Params{"tournament-id": "T1"})
	require.NoError(t, err)
	_, err = scope.DeletePlayer(h.ctx, model.Params{"player-id": "p1"})
	require.NoError(t, err)

	assert.Equal(t, 0, scope.Held())
	assert.Equal(t, 0, h.ledgerLen(t))
	require.NoError(t, scope.Close(h.ctx))
}

func TestCloseReleasesNewestFirst(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("StartTournament", mock.Anything, mock.Anything).Return(okStatus, nil)
	h.api.On("EndTournament", mock.Anything, mock.Anything).Return(okStatus, nil).Run(h.track("endTournament"))
	h.api.On("DeletePlayer", mock.Anything, mock.Anything).Return(okStatus, nil).Run(h.track("deletePlayer"))

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	_, err = scope.StartTournament(h.ctx, model.Params{"player-id": "p1", "session-id": "s1", "tournament-id": "T1"})
	require.NoError(t, err)

	require.NoError(t, scope.Close(h.ctx))
	assert.Equal(t, []string{"endTournament", "deletePlayer"}, h.calls)
}

func TestCloseRunsWithCancelledContext(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("DeletePlayer", mock.Anything, mock.Anything).Return(okStatus, nil).Once()

	ctx, cancel := context.WithCancel(h.ctx)
	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(ctx, openParams)
	require.NoError(t, err)

	cancel()
	require.NoError(t, scope.Close(ctx))
}

func TestCloseFailureKeepsLedgerEntry(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("StartTournament", mock.Anything, mock.Anything).Return(okStatus, nil)
	h.api.On("EndTournament", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	_, err = scope.StartTournament(h.ctx, model.Params{"player-id": "p1", "session-id": "s1", "tournament-id": "T1"})
	require.NoError(t, err)

	err = scope.Close(h.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrReleaseFailed)
	assert.ErrorIs(t, err, fixture.ErrOwnerBlocked)
	assert.Contains(t, err.Error(), "connection refused")

	// the owner of a running tournament is never deleted; both entries await a sweep
	h.api.AssertNumberOfCalls(t, "EndTournament", 1)
	h.api.AssertNotCalled(t, "DeletePlayer", mock.Anything, mock.Anything)
	assert.Equal(t, 2, h.ledgerLen(t))
}

func TestCloseKeepsOwnerWhenTournamentRefused(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil)
	h.api.On("StartTournament", mock.Anything, mock.Anything).Return(okStatus, nil)
	h.api.On("EndTournament", mock.Anything, mock.Anything).Return(forbidden, nil)

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	_, err = scope.StartTournament(h.ctx, model.Params{"player-id": "p1", "session-id": "s1", "tournament-id": "T1"})
	require.NoError(t, err)

	err = scope.Close(h.ctx)
	assert.ErrorContains(t, err, "Forbidden")
	assert.ErrorIs(t, err, fixture.ErrOwnerBlocked)
	h.api.AssertNotCalled(t, "DeletePlayer", mock.Anything, mock.Anything)
}

func TestCloseDeletesOtherPlayersWhenOneIsBlocked(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).Return(okOpen, nil).Once()
	h.api.On("OpenSession", mock.Anything, openParams).
		Return(`{"status":"ok","data":[{"player-id":"p2","session-id":"s2"}]}`, nil).Once()
	h.api.On("StartTournament", mock.Anything, mock.Anything).Return(okStatus, nil)
	h.api.On("EndTournament", mock.Anything, mock.Anything).Return(forbidden, nil)
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p2"}).Return(okStatus, nil).Once()

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)
	_, err = scope.StartTournament(h.ctx, model.Params{"player-id": "p1", "session-id": "s1", "tournament-id": "T1"})
	require.NoError(t, err)
	_, err = scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)

	require.Error(t, scope.Close(h.ctx))
	h.api.AssertNotCalled(t, "DeletePlayer", mock.Anything, model.Params{"player-id": "p1"})

	// tournament T1 and its owner p1 remain
	assert.Equal(t, 2, h.ledgerLen(t))
}

func TestTransportFailureSurfaces(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused"))

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.Error(t, err)
	assert.Equal(t, 0, scope.Held())
}

func TestMalformedResponseSurfaces(t *testing.T) {
	h := newHarness(t)
	h.api.On("SetNick", mock.Anything, mock.Anything).Return("<html>oops</html>", nil)

	_, err := h.mgr.NewScope().Call(h.ctx, model.OpSetNick, model.Params{"player-id": "p1", "nickname": "n"})
	assert.ErrorIs(t, err, model.ErrMalformedEnvelope)
}

func TestNumericIDPassedBackUnchanged(t *testing.T) {
	h := newHarness(t)
	h.api.On("OpenSession", mock.Anything, openParams).
		Return(`{"status":"ok","data":[{"player-id":9007199254740993,"session-id":7}]}`, nil)
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": json.Number("9007199254740993")}).
		Return(okStatus, nil).Once()

	scope := h.mgr.NewScope()
	_, err := scope.OpenSession(h.ctx, openParams)
	require.NoError(t, err)

	_, err = h.ledger.GetFixture(h.ctx, model.FixturePlayer, "9007199254740993")
	require.NoError(t, err)
	require.NoError(t, scope.Close(h.ctx))
}

func seed(t *testing.T, h *harness, kind model.FixtureKind, id, runID string, age time.Duration) {
	t.Helper()
	require.NoError(t, h.ledger.SaveFixture(h.ctx, &model.Fixture{
		Kind:      kind,
		ID:        id,
		RunID:     runID,
		CreatedAt: h.clock.Now().Add(-age),
	}))
}

func seedTournament(t *testing.T, h *harness, id, owner, runID string, age time.Duration) {
	t.Helper()
	require.NoError(t, h.ledger.SaveFixture(h.ctx, &model.Fixture{
		Kind:      model.FixtureTournament,
		ID:        id,
		PlayerID:  owner,
		RunID:     runID,
		CreatedAt: h.clock.Now().Add(-age),
	}))
}

func TestSweepEndsTournamentsBeforePlayers(t *testing.T) {
	h := newHarness(t)
	seed(t, h, model.FixturePlayer, "p1", "old", time.Hour)
	seed(t, h, model.FixturePlayer, "p2", "old", time.Hour)
	seed(t, h, model.FixtureTournament, "T1", "old", 30*time.Minute)

	h.api.On("EndTournament", mock.Anything, model.Params{"tournament-id": "T1"}).
		Return(okStatus, nil).Run(h.track("endTournament"))
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p1"}).
		Return(okStatus, nil).Run(h.track("deletePlayer"))
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p2"}).
		Return(notFound, nil).Run(h.track("deletePlayer"))

	report, err := h.mgr.Sweep(h.ctx, fixture.SweepOptions{Concurrency: 1})
	require.NoError(t, err)

	assert.Len(t, report.Candidates, 3)
	assert.Equal(t, 2, report.Released)
	assert.Equal(t, 1, report.Gone)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []string{"endTournament", "deletePlayer", "deletePlayer"}, h.calls)
	assert.Equal(t, 0, h.ledgerLen(t))
}

func TestSweepKeepsOwnerOfUnendedTournament(t *testing.T) {
	h := newHarness(t)
	seed(t, h, model.FixturePlayer, "p1", "old", time.Hour)
	seed(t, h, model.FixturePlayer, "p2", "old", time.Hour)
	seedTournament(t, h, "T1", "p1", "old", time.Hour)

	h.api.On("EndTournament", mock.Anything, model.Params{"tournament-id": "T1"}).Return(forbidden, nil)
	h.api.On("DeletePlayer", mock.Anything, model.Params{"player-id": "p2"}).Return(okStatus, nil).Once()

	report, err := h.mgr.Sweep(h.ctx, fixture.SweepOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Released)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	h.api.AssertNotCalled(t, "DeletePlayer", mock.Anything, model.Params{"player-id": "p1"})

	_, err = h.ledger.GetFixture(h.ctx, model.FixturePlayer, "p1")
	assert.NoError(t, err)
	_, err = h.ledger.GetFixture(h.ctx, model.FixtureTournament, "T1")
	assert.NoError(t, err)
}

func TestSweepKeepsFailures(t *testing.T) {
	h := newHarness(t)
	seed(t, h, model.FixturePlayer, "p1", "old", time.Hour)
	h.api.On("DeletePlayer", mock.Anything, mock.Anything).Return(forbidden, nil)

	report, err := h.mgr.Sweep(h.ctx, fixture.SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, h.ledgerLen(t))
}

func TestSweepFilters(t *testing.T) {
	h := newHarness(t)
	seed(t, h, model.FixturePlayer, "young", "old", time.Minute)
	seed(t, h, model.FixturePlayer, "aged", "old", 2*time.Hour)
	seed(t, h, model.FixturePlayer, "other", "elsewhere", 2*time.Hour)

	report, err := h.mgr.Sweep(h.ctx, fixture.SweepOptions{RunID: "old", OlderThan: time.Hour, DryRun: true})
	require.NoError(t, err)

	require.Len(t, report.Candidates, 1)
	assert.Equal(t, "aged", report.Candidates[0].ID)
	assert.Equal(t, 3, h.ledgerLen(t))
	h.api.AssertNotCalled(t, "DeletePlayer", mock.Anything, mock.Anything)
}

func TestSweepAbortsOnTransportFailure(t *testing.T) {
	h := newHarness(t)
	seed(t, h, model.FixturePlayer, "p1", "old", time.Hour)
	h.api.On("DeletePlayer", mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	_, err := h.mgr.Sweep(h.ctx, fixture.SweepOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.Equal(t, 1, h.ledgerLen(t))
}

package scenario

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

type tHelper interface {
	Helper()
}

func helper(t require.TestingT) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}

// failure formats an assertion message followed by the offending payload
func failure(message string, resp *model.Response) string {
	return message + "\n" + resp.Pretty()
}

// releaseScope is deferred by every scenario that acquires fixtures
func releaseScope(ctx context.Context, t require.TestingT, scope *fixture.Scope) {
	helper(t)
	assert.NoError(t, scope.Close(ctx), "Failed to release fixtures!")
}

// openSession opens a session on the configured platform and returns the
// player and session ids exactly as the backend sent them
func openSession(ctx context.Context, t require.TestingT, env *Env, scope *fixture.Scope) (playerID, sessionID any) {
	helper(t)
	resp, err := scope.OpenSession(ctx, env.sessionParams(env.Platform))
	require.NoError(t, err, "openSession failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to open session for player!", resp))
	require.True(t, resp.Has(model.FieldPlayerID), "Player id is not set!")
	return resp.Value(model.FieldPlayerID), resp.Value(model.FieldSessionID)
}

func changeNickname(ctx context.Context, t require.TestingT, env *Env, scope *fixture.Scope, playerID any) {
	helper(t)
	nickname := env.Names.Nickname()
	resp, err := scope.Call(ctx, model.OpSetNick, model.Params{
		model.ParamPlayerID: playerID,
		model.ParamNickname: nickname,
	})
	require.NoError(t, err, "setNick failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to change player's nickname!", resp))
	require.Equal(t, nickname, resp.String(model.FieldNickname), "Nickname does not match!")
}

func startTournament(ctx context.Context, t require.TestingT, env *Env, scope *fixture.Scope, playerID, sessionID any) string {
	helper(t)
	tournamentID := env.Names.TournamentID()
	resp, err := scope.StartTournament(ctx, model.Params{
		model.ParamPlayerID:     playerID,
		model.ParamSessionID:    sessionID,
		model.ParamTournamentID: tournamentID,
	})
	require.NoError(t, err, "startTournament failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to start tournament!", resp))
	return tournamentID
}

func endTournament(ctx context.Context, t require.TestingT, scope *fixture.Scope, tournamentID string) {
	helper(t)
	resp, err := scope.EndTournament(ctx, model.Params{model.ParamTournamentID: tournamentID})
	require.NoError(t, err, "endTournament failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to end tournament!", resp))
}

func deletePlayer(ctx context.Context, t require.TestingT, scope *fixture.Scope, playerID any) {
	helper(t)
	resp, err := scope.DeletePlayer(ctx, model.Params{model.ParamPlayerID: playerID})
	require.NoError(t, err, "deletePlayer failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to delete player!", resp))
}

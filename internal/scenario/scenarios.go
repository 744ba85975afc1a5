package scenario

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// ChangeNickname checks that setNick echoes the applied nickname
func ChangeNickname(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	playerID, _ := openSession(ctx, t, env, scope)
	changeNickname(ctx, t, env, scope, playerID)
	deletePlayer(ctx, t, scope, playerID)
}

// ChangeNicknameDuringTournament checks nickname changes while the player
// is in a tournament
func ChangeNicknameDuringTournament(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	playerID, sessionID := openSession(ctx, t, env, scope)
	tournamentID := startTournament(ctx, t, env, scope, playerID, sessionID)
	changeNickname(ctx, t, env, scope, playerID)
	endTournament(ctx, t, scope, tournamentID)
	deletePlayer(ctx, t, scope, playerID)
}

// DeleteLeaderboardsDuringTournament checks leaderboards can be dropped
// while a tournament is running
func DeleteLeaderboardsDuringTournament(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	playerID, sessionID := openSession(ctx, t, env, scope)
	tournamentID := startTournament(ctx, t, env, scope, playerID, sessionID)

	resp, err := scope.Call(ctx, model.OpDeleteLeaderboards, nil)
	require.NoError(t, err, "deleteLeaderboards failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to delete leaderboards!", resp))

	endTournament(ctx, t, scope, tournamentID)
	deletePlayer(ctx, t, scope, playerID)
}

// PlayerTokenRefresh checks refreshPlayer hands back a token
func PlayerTokenRefresh(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	playerID, _ := openSession(ctx, t, env, scope)

	resp, err := scope.Call(ctx, model.OpRefreshPlayer, model.Params{model.ParamPlayerID: playerID})
	require.NoError(t, err, "refreshPlayer failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to refresh player!", resp))
	require.True(t, resp.Has(model.FieldToken), "Player token is not set!")

	deletePlayer(ctx, t, scope, playerID)
}

// PlayerTokenOnSessionClose checks closeSession hands back the player's token
func PlayerTokenOnSessionClose(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	playerID, sessionID := openSession(ctx, t, env, scope)

	resp, err := scope.Call(ctx, model.OpCloseSession, model.Params{model.ParamSessionID: sessionID})
	require.NoError(t, err, "closeSession failed")
	require.Equal(t, model.StatusOK, resp.Status, failure("Failed to close session!", resp))
	require.True(t, resp.Has(model.FieldToken), "Player token is not set!")

	deletePlayer(ctx, t, scope, playerID)
}

// CreatePlayerWithInvalidPlatform checks openSession refuses an unknown
// platform. If the backend wrongly accepts it, the scope deletes the player.
func CreatePlayerWithInvalidPlatform(ctx context.Context, t require.TestingT, env *Env) {
	scope := env.Fixtures.NewScope()
	defer releaseScope(ctx, t, scope)

	resp, err := scope.OpenSession(ctx, env.sessionParams(env.InvalidPlatform))
	require.NoError(t, err, "openSession failed")
	require.Equal(t, model.StatusError, resp.Status, failure("Player created with invalid platform ID!", resp))
	require.Equal(t, model.MessageInvalidPlatform, resp.Message, "Invalid error message!")
}

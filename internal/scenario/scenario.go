// Package scenario holds the backend contract scenarios. Each one drives a
// short call sequence through a fixture.Scope and asserts on the envelopes.
// They take require.TestingT, so the same code runs under go test and under
// the CLI's Recorder.
package scenario

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/names"
)

// Env carries what every scenario needs
type Env struct {
	Fixtures *fixture.Manager
	Names    *names.Generator

	Platform        int
	InvalidPlatform int
	Version         string
	Region          string
}

// sessionParams builds openSession parameters for a fresh device
func (e *Env) sessionParams(platform int) model.Params {
	return model.Params{
		model.ParamName:     e.Names.DeviceName(),
		model.ParamPlatform: platform,
		model.ParamVersion:  e.Version,
		model.ParamRegion:   e.Region,
	}
}

// Func is a scenario body
type Func func(ctx context.Context, t require.TestingT, env *Env)

// Scenario is a named, runnable scenario
type Scenario struct {
	Name        string
	Description string
	Run         Func
}

// All returns every scenario in a stable order
func All() []Scenario {
	return []Scenario{
		{"change-nickname", "Nickname change is echoed back", ChangeNickname},
		{"change-nickname-during-tournament", "Nickname change while in a tournament", ChangeNicknameDuringTournament},
		{"delete-leaderboards-during-tournament", "Leaderboards can be dropped while a tournament runs", DeleteLeaderboardsDuringTournament},
		{"player-token-refresh", "refreshPlayer returns a token", PlayerTokenRefresh},
		{"player-token-on-session-close", "closeSession returns a token", PlayerTokenOnSessionClose},
		{"create-player-with-invalid-platform", "openSession rejects an unregistered platform", CreatePlayerWithInvalidPlatform},
	}
}

// Lookup finds a scenario by name
func Lookup(name string) (Scenario, bool) {
	for _, sc := range All() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/config"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

// runOperation performs op and prints the envelope. Fixtures it creates are
// recorded in the ledger and left running. Only the redis ledger outlives the
// process, so only then can a later `fixtures sweep` find them.
// A backend error envelope is printed and also returned so the exit code is
// non-zero.
func runOperation(cmd *cobra.Command, op model.Operation, params model.Params) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	scope := a.Fixtures.NewScope()

	var resp *model.Response
	switch op {
	case model.OpOpenSession:
		resp, err = scope.OpenSession(ctx, params)
	case model.OpStartTournament:
		resp, err = scope.StartTournament(ctx, params)
	default:
		resp, err = scope.Call(ctx, op, params)
	}
	if err != nil {
		return err
	}
	if scope.Held() > 0 && cfg.Ledger == config.LedgerMemory {
		logger.Warn("created fixture is not recorded durably and cannot be swept later; use --ledger redis to keep it",
			slog.String("operation", string(op)),
		)
	}

	if resp.OK() {
		switch op {
		case model.OpEndTournament:
			a.Fixtures.Forget(ctx, model.FixtureTournament, fmt.Sprint(params[model.ParamTournamentID]))
		case model.OpDeletePlayer:
			a.Fixtures.Forget(ctx, model.FixturePlayer, fmt.Sprint(params[model.ParamPlayerID]))
		}
	}

	newOutput(cmd).PrintResponse(resp)
	if !resp.OK() {
		return fmt.Errorf("%s: %s", op, resp.Message)
	}
	return nil
}

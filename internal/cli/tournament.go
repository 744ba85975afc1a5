package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament commands",
	}

	cmd.AddCommand(newTournamentStartCmd())
	cmd.AddCommand(newTournamentEndCmd())

	return cmd
}

func newTournamentStartCmd() *cobra.Command {
	var playerID, sessionID, tournamentID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a tournament for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			if tournamentID == "" {
				tournamentID = a.Names.TournamentID()
			}
			return runOperation(cmd, model.OpStartTournament, model.Params{
				model.ParamPlayerID:     playerID,
				model.ParamSessionID:    sessionID,
				model.ParamTournamentID: tournamentID,
			})
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	cmd.Flags().StringVar(&tournamentID, "tournament-id", "", "Tournament ID (default: generated)")
	_ = cmd.MarkFlagRequired("player-id")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}

func newTournamentEndCmd() *cobra.Command {
	var tournamentID string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End a tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, model.OpEndTournament, model.Params{model.ParamTournamentID: tournamentID})
		},
	}

	cmd.Flags().StringVar(&tournamentID, "tournament-id", "", "Tournament ID (required)")
	_ = cmd.MarkFlagRequired("tournament-id")

	return cmd
}

func newLeaderboardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboards",
		Short: "Leaderboard commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete every leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, model.OpDeleteLeaderboards, nil)
		},
	})

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/names"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerNickCmd())
	cmd.AddCommand(newPlayerRefreshCmd())
	cmd.AddCommand(newPlayerDeleteCmd())

	return cmd
}

func newPlayerNickCmd() *cobra.Command {
	var playerID, nickname string

	cmd := &cobra.Command{
		Use:   "nick",
		Short: "Change a player's nickname",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			if nickname == "" {
				nickname = a.Names.Nickname()
			}
			return runOperation(cmd, model.OpSetNick, model.Params{
				model.ParamPlayerID: playerID,
				model.ParamNickname: nickname,
			})
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "New nickname (default: "+names.NicknamePrefix+" plus a random suffix)")
	_ = cmd.MarkFlagRequired("player-id")

	return cmd
}

func newPlayerRefreshCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Issue a player a new token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, model.OpRefreshPlayer, model.Params{model.ParamPlayerID: playerID})
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	_ = cmd.MarkFlagRequired("player-id")

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, model.OpDeletePlayer, model.Params{model.ParamPlayerID: playerID})
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	_ = cmd.MarkFlagRequired("player-id")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionOpenCmd())
	cmd.AddCommand(newSessionCloseCmd())

	return cmd
}

func newSessionOpenCmd() *cobra.Command {
	var (
		name            string
		platform        int
		version, region string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a session, creating a player",
		Long: `Open a session, creating a player that is left running.

The player is recorded in the fixture ledger. Pass --ledger redis to be able
to remove it later with "fixtures sweep"; the memory ledger is gone once the
command exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			if name == "" {
				name = a.Names.DeviceName()
			}
			if !cmd.Flags().Changed("platform") {
				platform = cfg.Platform
			}
			if version == "" {
				version = cfg.Version
			}
			if region == "" {
				region = cfg.Region
			}

			return runOperation(cmd, model.OpOpenSession, model.Params{
				model.ParamName:     name,
				model.ParamPlatform: platform,
				model.ParamVersion:  version,
				model.ParamRegion:   region,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Device name (default: generated)")
	cmd.Flags().IntVar(&platform, "platform", 0, "Platform ID (default: GAMEAPI_PLATFORM)")
	cmd.Flags().StringVar(&version, "version", "", "Client version (default: GAMEAPI_VERSION)")
	cmd.Flags().StringVar(&region, "region", "", "Region (default: GAMEAPI_REGION)")

	return cmd
}

func newSessionCloseCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a session and print the player's token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, model.OpCloseSession, model.Params{model.ParamSessionID: sessionID})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = cmd.MarkFlagRequired("session-id")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/client"
	"github.com/mcoot/gameapi-e2e/internal/factory"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.BaseURL == "" {
				return factory.ErrNoBaseURL
			}

			c := client.New(cfg.BaseURL, client.Options{
				APIKey:  cfg.APIKey,
				Timeout: cfg.Timeout,
				Logger:  logger,
			})
			if err := c.Ping(cmd.Context()); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage("Status: ok")
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/config"
	"github.com/mcoot/gameapi-e2e/internal/factory"
)

// globalFlags holds persistent flag values. They override the environment
// only when set explicitly.
type globalFlags struct {
	server   string
	apiKey   string
	output   string
	verbose  bool
	ledger   string
	redisURL string
}

func (f *globalFlags) apply(cmd *cobra.Command, c *config.Config) {
	changed := cmd.Flags().Changed

	if changed("server") {
		c.BaseURL = f.server
	}
	if changed("api-key") {
		c.APIKey = f.apiKey
	}
	if changed("verbose") {
		c.Verbose = f.verbose
	}
	if changed("ledger") {
		c.Ledger = f.ledger
	}
	if changed("redis-url") {
		c.RedisURL = f.redisURL
	}
}

// getApp wires the application on first use so commands that never reach
// the backend do not need one configured
func getApp() (*factory.App, error) {
	if app != nil {
		return app, nil
	}
	a, err := factory.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	app = a
	return app, nil
}

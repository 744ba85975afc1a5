package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/config"
	"github.com/mcoot/gameapi-e2e/internal/factory"
)

var (
	cfg    *config.Config
	flags  *globalFlags
	logger *slog.Logger
	app    *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	flags = &globalFlags{}
	cfg = config.Default()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "gameapi",
		Short: "CLI tool for the game backend API",
		Long: `gameapi drives the game backend API.

It can call each backend operation directly, run the contract scenarios
against a backend, and sweep fixtures that crashed runs left behind.
Configuration comes from GAMEAPI_* variables, an optional .env file, and
the flags below.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.LogLevel(),
			}))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			err := app.Close()
			app = nil
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.server, "server", "", "Backend URL (env: GAMEAPI_BASE_URL)")
	pf.StringVar(&flags.apiKey, "api-key", "", "Backend API key (env: GAMEAPI_API_KEY)")
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: text, json")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output (env: GAMEAPI_VERBOSE)")
	pf.StringVar(&flags.ledger, "ledger", "", "Fixture ledger: memory, redis (env: GAMEAPI_LEDGER)")
	pf.StringVar(&flags.redisURL, "redis-url", "", "Redis URL for the redis ledger (env: GAMEAPI_REDIS_URL)")

	// Add subcommands
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newLeaderboardsCmd())
	rootCmd.AddCommand(newScenarioCmd())
	rootCmd.AddCommand(newFixturesCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

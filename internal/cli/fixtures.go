package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/factory"
	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect and sweep the fixture ledger",
		Long: `The ledger records every player and tournament created through this tool
until it is torn down. With the redis ledger it outlives the process, so
fixtures leaked by a crashed run can be swept later. The default memory
ledger lives only as long as one command: fixtures created by "session open"
or "tournament start" under it cannot be swept afterwards.`,
	}

	cmd.AddCommand(newFixturesListCmd())
	cmd.AddCommand(newFixturesSweepCmd())

	return cmd
}

func newFixturesListCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			// listing needs only the ledger, not a backend
			store, err := factory.NewLedger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var fixtures []*model.Fixture
			if runID != "" {
				fixtures, err = store.ListFixturesForRun(cmd.Context(), runID)
			} else {
				fixtures, err = store.ListFixtures(cmd.Context())
			}
			if err != nil {
				return err
			}

			newOutput(cmd).PrintFixtures(fixtures)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Only list fixtures from this run")

	return cmd
}

func newFixturesSweepCmd() *cobra.Command {
	var opts fixture.SweepOptions

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "End leaked tournaments and delete leaked players",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			report, err := a.Fixtures.Sweep(cmd.Context(), opts)
			if report != nil {
				newOutput(cmd).PrintSweep(report, opts.DryRun)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "Only sweep fixtures from this run")
	cmd.Flags().DurationVar(&opts.OlderThan, "older-than", 10*time.Minute, "Skip fixtures younger than this")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "Backend calls in flight per phase")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List what would be swept without calling the backend")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/scenario"
)

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Contract scenario commands",
	}

	cmd.AddCommand(newScenarioListCmd())
	cmd.AddCommand(newScenarioRunCmd())

	return cmd
}

func newScenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			newOutput(cmd).PrintScenarios(scenario.All())
			return nil
		},
	}
}

func newScenarioRunCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "run [name...]",
		Short: "Run scenarios against the backend (all when no names are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := scenario.All()
			if len(args) > 0 {
				selected = selected[:0:0]
				for _, name := range args {
					sc, ok := scenario.Lookup(name)
					if !ok {
						return fmt.Errorf("unknown scenario %q (see `gameapi scenario list`)", name)
					}
					selected = append(selected, sc)
				}
			}

			a, err := getApp()
			if err != nil {
				return err
			}

			results := scenario.RunAll(cmd.Context(), selected, a.Env(), parallel)
			newOutput(cmd).PrintResults(results)

			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of scenarios to run at once")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/scenario"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(flags.output, cmd.OutOrStdout())
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func (o *Output) isJSON() bool {
	return o.format == "json"
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.isJSON() {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

// PrintResponse outputs a backend envelope
func (o *Output) PrintResponse(resp *model.Response) {
	if o.isJSON() {
		o.printJSON(resp)
		return
	}

	fmt.Fprintf(o.w, "Status: %s\n", resp.Status)
	if resp.Message != "" {
		fmt.Fprintf(o.w, "Message: %s\n", resp.Message)
	}
	first := resp.First()
	fields := make([]string, 0, len(first))
	for k := range first {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		fmt.Fprintf(o.w, "%s: %s\n", k, resp.String(k))
	}
}

// PrintScenarios lists the available scenarios
func (o *Output) PrintScenarios(scenarios []scenario.Scenario) {
	if o.isJSON() {
		type entry struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		entries := make([]entry, 0, len(scenarios))
		for _, sc := range scenarios {
			entries = append(entries, entry{sc.Name, sc.Description})
		}
		o.printJSON(entries)
		return
	}
	for _, sc := range scenarios {
		fmt.Fprintf(o.w, "%-40s %s\n", sc.Name, sc.Description)
	}
}

// PrintResults outputs scenario results and a summary line
func (o *Output) PrintResults(results []scenario.Result) {
	if o.isJSON() {
		o.printJSON(results)
		return
	}

	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Fprintf(o.w, "%s  %s (%s)\n", status, r.Name, r.Duration.Round(time.Millisecond))
		for _, f := range r.Failures {
			fmt.Fprintf(o.w, "    %s\n", f)
		}
	}
	fmt.Fprintf(o.w, "\n%d passed, %d failed\n", passed, len(results)-passed)
}

// PrintFixtures outputs ledger entries
func (o *Output) PrintFixtures(fixtures []*model.Fixture) {
	if o.isJSON() {
		if fixtures == nil {
			fixtures = []*model.Fixture{}
		}
		o.printJSON(fixtures)
		return
	}
	if len(fixtures) == 0 {
		fmt.Fprintln(o.w, "No fixtures recorded")
		return
	}
	for _, f := range fixtures {
		fmt.Fprintf(o.w, "%-10s %-40s run=%s created=%s\n", f.Kind, f.ID, f.RunID, f.CreatedAt.Format(time.RFC3339))
	}
}

// PrintSweep outputs a sweep report
func (o *Output) PrintSweep(report *fixture.SweepReport, dryRun bool) {
	if o.isJSON() {
		o.printJSON(report)
		return
	}
	if dryRun {
		fmt.Fprintf(o.w, "Would sweep %d fixtures:\n", len(report.Candidates))
		o.PrintFixtures(report.Candidates)
		return
	}
	fmt.Fprintf(o.w, "Swept %d fixtures: %d released, %d already gone, %d failed, %d skipped\n",
		len(report.Candidates), report.Released, report.Gone, report.Failed, report.Skipped)
}

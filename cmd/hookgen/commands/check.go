package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/display"
	"github.com/teranos/qntx-hooks/hookgen"
	"github.com/teranos/qntx-hooks/logger"
)

// CheckCmd reports generated files that no longer match their declarations
var CheckCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Check that generated hooks are up to date",
	Long: `Regenerate in memory and compare with the files on disk.

A file is stale when its content differs, missing when a container has no
generated file, and orphaned when hookgen wrote it for a container that is
gone. Nothing is written.

Exit codes:
  0 - Generated hooks are up to date
  1 - Generated hooks are out of date, or declarations have errors
  2 - Error during check

Examples:
  hookgen check              # Check all packages (CI)
  hookgen check ./car        # One package`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbosity := verbosityOf(cmd)
	g := hookgen.New(cfg)

	results, loadErr := generate(cmd.Context(), g, args)
	if results == nil && loadErr != nil {
		return loadErr
	}
	failed := report(cmd.ErrOrStderr(), results, verbosity)

	drifts, checkErr := g.Check(results)
	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(out, driftReport(drifts)); err != nil {
			return err
		}
		return firstErr(loadErr, checkErr, failed)
	}
	if len(drifts) > 0 {
		data := pterm.TableData{{"Status", "File", "Container"}}
		for _, d := range drifts {
			data = append(data, []string{d.Kind.String(), relative(d.File), d.Container})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		pterm.Error.WithWriter(out).Println("Generated hooks are out of date.")
		pterm.Fprintln(out, table)
		pterm.Info.WithWriter(out).Println("Run 'hookgen' to update")
		return firstErr(loadErr, checkErr, failed)
	}
	if err := firstErr(loadErr, checkErr, failed); err != nil {
		return err
	}
	if logger.ShouldOutput(verbosity, logger.OutputUserStatus) {
		pterm.Success.WithWriter(out).Println("Generated hooks are up to date")
	}
	return nil
}

// firstErr picks the error deciding the exit status: a load failure over
// drift over diagnostics.
func firstErr(loadErr, checkErr error, failed bool) error {
	switch {
	case loadErr != nil:
		return loadErr
	case checkErr != nil:
		return checkErr
	case failed:
		return errDiagnostics
	default:
		return nil
	}
}

// driftRow is one drift as printed by hookgen check --json.
type driftRow struct {
	Status    string `json:"status"`
	File      string `json:"file"`
	Container string `json:"container,omitempty"`
}

func driftReport(drifts []hookgen.Drift) []driftRow {
	rows := make([]driftRow, 0, len(drifts))
	for _, d := range drifts {
		rows = append(rows, driftRow{Status: d.Kind.String(), File: relative(d.File), Container: d.Container})
	}
	return rows
}

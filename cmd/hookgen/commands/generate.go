package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen"
	"github.com/teranos/qntx-hooks/logger"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	verbosity := verbosityOf(cmd)
	start := time.Now()

	g := hookgen.New(cfg)
	results, loadErr := generate(cmd.Context(), g, args)
	if results == nil && loadErr != nil {
		return loadErr
	}
	failed := report(cmd.ErrOrStderr(), results, verbosity)

	if toStdout {
		for _, pr := range results {
			for _, r := range pr.Results {
				if r.Source != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", r.File, r.Source)
				}
			}
		}
	} else {
		written, err := g.Write(results)
		if logger.ShouldOutput(verbosity, logger.OutputResults) {
			for _, f := range written {
				pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("wrote %s", relative(f))
			}
		}
		logger.Infof("wrote %d generated files", len(written))
		if err != nil {
			return err
		}
	}

	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("done in %s", time.Since(start).Round(time.Millisecond))
	}
	if loadErr != nil {
		return loadErr
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

// generate discovers the packages matching patterns (./... when empty) in
// the working directory and runs the pipeline over them. Packages that
// failed to load are reported in the error while the results of the others
// are still returned; callers finish their work and then return the error.
func generate(ctx context.Context, g *hookgen.Generator, patterns []string) ([]hookgen.PackageResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}
	pkgs, loadErr := g.Discover(ctx, wd, patterns)
	if len(pkgs) == 0 {
		return nil, loadErr
	}
	results, err := g.GeneratePackages(ctx, pkgs)
	if err != nil {
		return nil, err
	}
	if loadErr != nil {
		loadErr = errors.WithHint(errors.Wrap(loadErr, "some packages failed to load"),
			"the packages that loaded were still processed")
	}
	return results, loadErr
}

// report prints diagnostics and per-container errors in file:line:col form
// and reports whether there were any.
func report(w io.Writer, results []hookgen.PackageResult, verbosity int) bool {
	failed := false
	for _, pr := range results {
		if logger.ShouldOutput(verbosity, logger.OutputProgress) && pr.Package != nil {
			pterm.Info.WithWriter(w).Printfln("%s: %d containers", pr.Package.Path, len(pr.Results))
		}
		for _, r := range pr.Results {
			if logger.ShouldOutput(verbosity, logger.OutputDiscovery) {
				fmt.Fprintf(w, "  %s %s (%s)\n", r.Container.Pos, r.Container.Name, r.Container.Kind)
			}
			for _, d := range r.Diagnostics {
				failed = true
				fmt.Fprintf(w, "%s: %s\n", d.Pos, d.Error())
				logger.Debugw("diagnostic",
					logger.FieldContainer, d.Container,
					logger.FieldHook, d.Declaration,
					logger.FieldFile, d.Pos.String(),
					logger.FieldError, d.Message)
			}
			if r.Err != nil {
				failed = true
				fmt.Fprintf(w, "%s: %s\n", r.Container.Pos, r.Err)
				if hint := errors.FlattenHints(r.Err); hint != "" {
					fmt.Fprintf(w, "  hint: %s\n", hint)
				}
				if errors.IsUnsupportedContainerError(r.Err) {
					logger.Warnw("unsupported container", logger.FieldContainer, r.Container.Name, logger.FieldFile, r.Container.Pos.String())
				} else {
					logger.Errorw("container failed", logger.FieldContainer, r.Container.Name, logger.FieldError, r.Err)
				}
			}
		}
	}
	return failed
}

// relative shortens path against the working directory for display.
func relative(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}

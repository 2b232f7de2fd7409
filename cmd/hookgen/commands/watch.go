package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/hookgen"
	"github.com/teranos/qntx-hooks/hookgen/discover"
	"github.com/teranos/qntx-hooks/logger"
	"github.com/teranos/qntx-hooks/watch"
)

// WatchCmd regenerates hooks whenever declarations change
var WatchCmd = &cobra.Command{
	Use:   "watch [dirs]",
	Short: "Regenerate hooks when Go sources change",
	Long: `Generate once, then watch the directory trees (default: the working
directory) and regenerate a package whenever one of its Go files changes.

Changes settle for watch.debounce_ms before regenerating. Files carrying a
generated-code header and, unless generate.tests is set, _test.go files are
ignored.

Examples:
  hookgen watch              # Watch the working directory
  hookgen watch car truck    # Watch two trees`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	verbosity := verbosityOf(cmd)
	g := hookgen.New(cfg)
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	patterns := make([]string, len(roots))
	for i, root := range roots {
		patterns[i] = treePattern(root)
	}
	results, loadErr := generate(ctx, g, patterns)
	if results == nil && loadErr != nil {
		return loadErr
	}
	if loadErr != nil {
		// A broken package may be the one about to be fixed; keep watching.
		logger.Logger.Warnw("initial generation incomplete", logger.FieldError, loadErr)
		PrintError(cmd.ErrOrStderr(), loadErr)
	}
	if err := writeResults(out, cmd.ErrOrStderr(), g, results, verbosity); err != nil {
		return err
	}

	w, err := watch.New(roots, func(ctx context.Context, dirs []string) error {
		var pkgs []*discover.Package
		for _, dir := range dirs {
			pkg, err := discover.Dir(dir, g.Options())
			if err != nil {
				logger.Logger.Debugw("skipping directory", logger.FieldFile, dir, logger.FieldError, err)
				continue
			}
			pkgs = append(pkgs, pkg)
		}
		results, err := g.GeneratePackages(ctx, pkgs)
		if err != nil {
			return err
		}
		return writeResults(out, cmd.ErrOrStderr(), g, results, verbosity)
	}, watch.Options{
		Debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		Tests:    cfg.Generate.Tests,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	pterm.Info.WithWriter(out).Printfln("watching %s (Ctrl-C to stop)", strings.Join(roots, ", "))
	return w.Run(ctx)
}

// writeResults reports diagnostics and writes what generated cleanly.
// Diagnostics are not an error while watching.
func writeResults(out, errOut io.Writer, g *hookgen.Generator, results []hookgen.PackageResult, verbosity int) error {
	report(errOut, results, verbosity)
	written, err := g.Write(results)
	if logger.ShouldOutput(verbosity, logger.OutputResults) {
		for _, f := range written {
			pterm.Success.WithWriter(out).Printfln("wrote %s", relative(f))
		}
	}
	return err
}

// treePattern turns a directory into a go command pattern for its tree.
func treePattern(dir string) string {
	dir = filepath.ToSlash(filepath.Clean(dir))
	switch {
	case dir == ".":
		return "./..."
	case filepath.IsAbs(dir) || strings.HasPrefix(dir, "../"):
		return dir + "/..."
	default:
		return "./" + dir + "/..."
	}
}

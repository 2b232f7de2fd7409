// Package commands implements the hookgen CLI.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/config"
	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/logger"
)

var (
	configPath string
	jsonOutput bool

	// cfg is loaded once per invocation by setup.
	cfg *config.Config
)

// errDiagnostics is returned after declaration diagnostics were printed.
var errDiagnostics = errors.New("declarations have errors")

// RootCmd generates hooks for the packages matching its arguments.
var RootCmd = &cobra.Command{
	Use:   "hookgen [packages]",
	Short: "Generate hook implementations from declarations",
	Long: `hookgen generates implementations of hook containers.

A container is a struct embedding hooks.Hooks (or an interface embedding
hooks.HookSet) whose properties are typed with one of the ten hook variants:

  type CarHooks struct {
      hooks.Hooks

      Accelerate hooks.Sync[func(newSpeed int)]
      Brake      hooks.SyncBail[func(x, y int) string]
  }

For each container hookgen writes <name>_hooks.go next to it with a
CarHooksImpl type, its constructor and one type per hook.

Packages are go command patterns and default to ./...

Exit codes:
  0 - Generated (or nothing to do)
  1 - Declarations have errors
  2 - Error during generation

Examples:
  hookgen                        # All packages below the working directory
  hookgen ./car                  # One package
  hookgen --stdout ./car         # Print instead of writing
  HOOKGEN_FLAGS=-vv hookgen      # Flags from the environment`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Log as JSON")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: hookgen.toml found upward from the working directory)")

	RootCmd.Flags().Bool("stdout", false, "Print generated code instead of writing files")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(RulesCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(VersionCmd)
}

// ExitCode maps a command error to the process exit status: 1 for
// declaration diagnostics and stale generated files, 2 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsAny(err, errDiagnostics, errors.ErrStale), errors.IsValidationError(err):
		return 1
	default:
		return 2
	}
}

// PrintError writes an operational error and its hints to w. Diagnostics
// and stale files were already reported by the command and print nothing.
func PrintError(w io.Writer, err error) {
	if ExitCode(err) != 2 {
		return
	}
	fmt.Fprintln(w, "Error:", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}

func setup(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")

	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		config.Reset()
		cfg, err = config.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger.SetTheme(cfg.Log.Theme)
	if err := logger.Initialize(jsonOutput || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		info := pterm.Info.WithWriter(cmd.ErrOrStderr())
		format := "console"
		if logger.JSONOutput {
			format = "json"
		}
		info.Printfln("verbosity: %s, log format: %s", logger.LevelName(verbosity), format)

		var shown []string
		for c := logger.OutputResults; c <= logger.OutputSynthesis; c++ {
			if logger.ShouldOutput(verbosity, c) {
				shown = append(shown, logger.CategoryName(c))
			}
		}
		info.Printfln("output: %s", strings.Join(shown, ", "))
		for _, f := range config.FilesUsed() {
			pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("config: %s", f)
		}
		if configPath != "" {
			pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("config: %s", configPath)
		}
	}
	return nil
}

func verbosityOf(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

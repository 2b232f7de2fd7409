package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/config"
	"github.com/teranos/qntx-hooks/errors"
)

// InitCmd writes a hookgen.toml with the effective settings
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a hookgen.toml",
	Long: `Write a hookgen.toml holding the effective configuration (defaults,
merged with any user config and HOOKGEN_* variables) to dir (default: the
working directory). An existing file is kept unless --force is given, in
which case it is backed up first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	InitCmd.Flags().Bool("force", false, "Overwrite an existing hookgen.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "use --force to overwrite it")
	}

	if err := config.Write(path, cfg); err != nil {
		return err
	}
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("wrote %s", path)
	return nil
}

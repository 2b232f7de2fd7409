package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/qntx-hooks/display"
	"github.com/teranos/qntx-hooks/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hookgen version information",
	Long:  `Display version, build time, commit hash, and platform information for the hookgen binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		info := version.Get()
		out := cmd.OutOrStdout()

		switch {
		case display.ShouldOutputJSON(cmd):
			return display.OutputJSON(out, info)
		case asYAML:
			output, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(output))
		default:
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		}
		return nil
	},
}

func init() {
	VersionCmd.Flags().Bool("yaml", false, "Output version info as YAML")
}

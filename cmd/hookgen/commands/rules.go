package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/qntx-hooks/display"
	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/synth"
	"github.com/teranos/qntx-hooks/hookgen/variant"
)

// RulesCmd prints the variant rule table
var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the ten hook variants and how they dispatch",
	Long: `Show, for each hook variant, the runtime type a generated hook embeds,
the shape of its Call method and the result its taps return. R stands for
the declared result type.

Examples:
  hookgen rules                  # Table
  hookgen rules --format yaml    # Machine-readable
  hookgen rules --json           # Same, as JSON`,
	RunE: runRules,
}

func init() {
	RulesCmd.Flags().StringP("format", "f", "table", "Output format: table, yaml, json")
}

// ruleRow is one variant as printed by hookgen rules.
type ruleRow struct {
	Variant      string `json:"variant" yaml:"variant"`
	Base         string `json:"base" yaml:"base"`
	Extra        string `json:"extra" yaml:"extra"`
	Call         string `json:"call" yaml:"call"`
	Tap          string `json:"tap" yaml:"tap"`
	Async        bool   `json:"async" yaml:"async"`
	Experimental bool   `json:"experimental,omitempty" yaml:"experimental,omitempty"`
}

func ruleRows() []ruleRow {
	rules := variant.All()
	rows := make([]ruleRow, 0, len(rules))
	for _, r := range rules {
		var params []string
		if r.Async {
			params = append(params, "ctx context.Context")
		}
		if r.Concurrency {
			params = append(params, "concurrency int")
		}
		params = append(params, "params...")
		tap := "params..."
		if r.Async {
			tap = "ctx context.Context, " + tap
		}

		rows = append(rows, ruleRow{
			Variant:      r.Variant.String(),
			Base:         synth.Runtime + "." + r.Base,
			Extra:        r.Extra.String(),
			Call:         "Call(" + strings.Join(params, ", ") + ")" + resultList(r.CallResults("R")),
			Tap:          "func(" + tap + ")" + resultList(r.TapResults("R", synth.Runtime)),
			Async:        r.Async,
			Experimental: r.Experimental,
		})
	}
	return rows
}

func resultList(rs []string) string {
	switch len(rs) {
	case 0:
		return ""
	case 1:
		return " " + rs[0]
	default:
		return " (" + strings.Join(rs, ", ") + ")"
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	rows := ruleRows()
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	switch format {
	case "json":
		return display.OutputJSON(out, rows)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return errors.Wrap(err, "failed to encode rules")
		}
		return enc.Close()
	case "table":
		data := pterm.TableData{{"Variant", "Base", "Extra", "Call", "Tap"}}
		for _, r := range rows {
			name := r.Variant
			if r.Experimental {
				name += " (experimental)"
			}
			data = append(data, []string{name, r.Base, r.Extra, r.Call, r.Tap})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		pterm.Fprintln(out, table)
		return nil
	default:
		return errors.Newf("unknown format %q (want table, yaml or json)", format)
	}
}

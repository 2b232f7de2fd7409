// Package display decides between human and machine output for CLI
// commands.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/qntx-hooks/errors"
)

// CIEnv is set by most CI systems; it makes JSON the default output.
const CIEnv = "CI"

// ShouldOutputJSON determines if a command should output JSON: an explicit
// --json wins, then the root's persistent --json, then whether we run in CI
// with HOOKGEN_JSON_IN_CI set.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return inCI()
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	if v, err := cmd.Root().PersistentFlags().GetBool("json"); err == nil && v {
		return true
	}
	return inCI()
}

func inCI() bool {
	return os.Getenv(CIEnv) != "" && os.Getenv("HOOKGEN_JSON_IN_CI") != ""
}

// MarshalJSON marshals v with two-space indentation.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// OutputJSON writes v to w as indented JSON followed by a newline.
func OutputJSON(w io.Writer, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

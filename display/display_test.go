package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommands() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "hookgen"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "check", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)
	return root, child
}

func TestShouldOutputJSON(t *testing.T) {
	t.Setenv(CIEnv, "")

	root, child := newCommands()
	root.SetArgs([]string{"check"})
	require.NoError(t, root.Execute())
	assert.False(t, ShouldOutputJSON(child))

	root, child = newCommands()
	root.SetArgs([]string{"--json", "check"})
	require.NoError(t, root.Execute())
	assert.True(t, ShouldOutputJSON(child))
}

func TestShouldOutputJSON_CI(t *testing.T) {
	t.Setenv(CIEnv, "true")
	t.Setenv("HOOKGEN_JSON_IN_CI", "1")
	assert.True(t, ShouldOutputJSON(nil))

	t.Setenv("HOOKGEN_JSON_IN_CI", "")
	assert.False(t, ShouldOutputJSON(nil))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"stale": 1}))
	assert.Equal(t, "{\n  \"stale\": 1\n}\n", buf.String())
}

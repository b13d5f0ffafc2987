package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpOf(t *testing.T, cmd *cobra.Command) string {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	return buf.String()
}

// TestGetLoadCmd verifies load command structure.
func TestGetLoadCmd(t *testing.T) {
	cmd := getLoadCmd()
	assert.Equal(t, "load", cmd.Name())
	assert.NotNil(t, cmd.RunE)

	help := helpOf(t, cmd)
	assert.Contains(t, help, "LOAD DATA LOCAL INFILE")
	assert.Contains(t, help, "stageload load customers.csv")

	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)
	assert.Equal(t, "f", flag.Shorthand)

	for _, v := range []string{"no-audit", "no-progress"} {
		flag = cmd.Flags().Lookup(v)
		require.NotNil(t, flag, v)
		assert.Equal(t, "false", flag.DefValue)
	}
}

// TestGetLoadCmd_Args verifies exactly one file is required.
func TestGetLoadCmd_Args(t *testing.T) {
	cmd := getLoadCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"a.csv", "b.csv"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.csv"}))
}

// TestGetDropCmd verifies drop command structure.
func TestGetDropCmd(t *testing.T) {
	cmd := getDropCmd()
	assert.Equal(t, "drop", cmd.Name())
	assert.NotNil(t, cmd.RunE)

	flag := cmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Contains(t, helpOf(t, cmd), "stageload drop --force")
}

// TestGetPreviewCmd verifies preview command structure.
func TestGetPreviewCmd(t *testing.T) {
	cmd := getPreviewCmd()
	assert.Equal(t, "preview", cmd.Name())

	flag := cmd.Flags().Lookup("number")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
	assert.Contains(t, helpOf(t, cmd), "stageload preview -n 50")
}

// TestGetHistoryCmd verifies history command structure.
func TestGetHistoryCmd(t *testing.T) {
	cmd := getHistoryCmd()
	assert.Equal(t, "history", cmd.Name())

	flag := cmd.Flags().Lookup("number")
	require.NotNil(t, flag)
	assert.Equal(t, "20", flag.DefValue)
	require.NotNil(t, cmd.Flags().Lookup("source"))
	assert.Contains(t, helpOf(t, cmd), "history.sqlite")
}

// TestGetConfigCmd verifies config command structure.
func TestGetConfigCmd(t *testing.T) {
	cmd := getConfigCmd()
	assert.Equal(t, "config", cmd.Name())
	assert.Contains(t, helpOf(t, cmd), "masked")
}

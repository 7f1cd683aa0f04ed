package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_GlobalFlagsRegistered(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag --%s not registered", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "q", rootCmd.PersistentFlags().Lookup("quiet").Shorthand)
}

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "templates")
	assert.Contains(t, names, "version")
}

func TestVersionSubcommand(t *testing.T) {
	resetFlags()

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ofsaav dev\n", stdout.String())
}

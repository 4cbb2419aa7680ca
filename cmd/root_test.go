/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/orien/stackpreview/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "stackpreview", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "<prefix>-<identifier>-<environment>-<component>")
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
		valueType string
	}{
		{name: "config", shorthand: "c", defValue: "stackpreview.yaml", valueType: "string"},
		{name: "env-file", defValue: ".env", valueType: "string"},
		{name: "region", defValue: "", valueType: "string"},
		{name: "profile", defValue: "", valueType: "string"},
		{name: "verbose", shorthand: "v", defValue: "false", valueType: "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
			assert.Equal(t, tt.valueType, flag.Value.Type())
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"deploy", "status", "list", "cleanup", "validate"} {
		assert.NotNil(t, findCommand(rootCmd, name), "%s should be registered", name)
	}
}

func TestRootCmd_SubcommandArgs(t *testing.T) {
	for _, name := range []string{"deploy", "status", "cleanup", "validate"} {
		c := findCommand(rootCmd, name)
		require.NotNil(t, c)
		assert.NoError(t, c.Args(c, []string{"42"}), name)
		assert.Error(t, c.Args(c, []string{}), name)
		assert.Error(t, c.Args(c, []string{"42", "43"}), name)
	}

	list := findCommand(rootCmd, "list")
	require.NotNil(t, list)
	assert.NoError(t, list.Args(list, []string{}))
	assert.Error(t, list.Args(list, []string{"42"}))
}

func TestRootCmd_Help(t *testing.T) {
	f := newCmdFixture(t, testConfig)

	out, err := f.execute("--help")

	require.NoError(t, err)
	assert.Contains(t, out, "stackpreview")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "cleanup")
	assert.Contains(t, out, "--env-file")
}

func TestRootCmd_Version(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{
		Use:     "stackpreview",
		Version: version.Short(),
	}
	cmd.SetVersionTemplate(version.Info() + "\n")
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "stackpreview "+version.Short()))
	assert.Contains(t, output, "Git commit:")
	assert.Contains(t, output, "Platform:")
}

func TestRootCmd_InvalidFlag(t *testing.T) {
	f := newCmdFixture(t, testConfig)

	_, err := f.execute("--invalid-flag")

	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "unknown flag")
}

// Copyright 2026 The OfsaaValidator Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// newTestCmd returns the root command with isolated stdout and stderr
// buffers so tests can verify output in-process.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every command flag to its default so tests do not leak
// state into each other.
func resetFlags() {
	for _, fs := range []*pflag.FlagSet{
		rootCmd.PersistentFlags(),
		validateCmd.Flags(),
		templatesCmd.Flags(),
	} {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	}
}

// customerTemplate is a minimal Customer staging-table declaration.
const customerTemplate = `<Table name="CUSTOMER" description="Customer master">
  <FileFormat delimiter="~" encoding="UTF-8" dateFormat="YYYYMMDD"/>
  <Columns>
    <Column name="V_CUSTOMER_ID" dataType="VARCHAR2" length="20" nullable="false" position="1"/>
    <Column name="D_BIRTH_DATE" dataType="DATE" position="2"/>
    <Column name="N_BALANCE" dataType="NUMBER" position="3"/>
  </Columns>
</Table>
`

// writeTemplatesDir creates a templates directory holding the customer
// template and returns its path.
func writeTemplatesDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "templates")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Customer.xml"), []byte(customerTemplate), 0o600))
	return dir
}

// writeDataFile creates a staging file with the given lines under dir.
func writeDataFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

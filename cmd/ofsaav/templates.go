package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GooferByte/OfsaaValidator/internal/templates"
)

var templatesDirFlag string

// templatesCmd lists the table definitions found in the templates directory.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List loaded table definitions",
	Long:  "Load the XML table definitions and list each table with its column count and file format.",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesDirFlag, "templates", defaultTemplatesDir, "directory containing XML table definitions")
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	tables, err := templates.LoadDir(templatesDirFlag)
	if err != nil {
		return exitError(ExitInvalidArgs, "ofsaav: %v", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%d table definition(s) in %s\n\n", tables.Len(), templatesDirFlag)
	for _, name := range tables.Names() {
		tbl, _ := tables.Get(name)
		mandatory := 0
		for _, c := range tbl.Columns {
			if c.Mandatory() {
				mandatory++
			}
		}
		fmt.Fprintf(w, "%-30s %3d columns (%d mandatory), delimiter %q, encoding %s\n",
			tbl.Name, len(tbl.Columns), mandatory, tbl.Delimiter, tbl.Encoding)
		if tbl.Description != "" {
			fmt.Fprintf(w, "    %s\n", tbl.Description)
		}
	}
	return nil
}

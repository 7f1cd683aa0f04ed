package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	ofsaavlog "github.com/GooferByte/OfsaaValidator/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for ofsaav.
var rootCmd = &cobra.Command{
	Use:   "ofsaav",
	Short: "Validate staging files against OFSAA table definitions",
	Long: `ofsaav checks delimited staging files against OFSAA staging-table
definitions before a warehouse load. It resolves which table a file
belongs to, validates every record against the table's column rules,
and reports valid and rejected records with fix recommendations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		ofsaavlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd)
}

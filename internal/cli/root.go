// Package cli implements the splitctl command tree. Every command runs
// the same parsing, matching, and splitting code the server uses, but
// offline: no Splitwise account, no network.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitctl",
	Short: "Exercise the splitbridge parsers and split calculator offline",
	Long: `Splitctl runs the splitbridge amount parser, date parser, name
matcher, and split calculator locally, without a Splitwise account.

Examples:
  splitctl parse-amount "$25.50"                        Parse an amount from chat text
  splitctl parse-date "March 5"                         Parse a spoken date
  splitctl split 100 3                                  Split a total three ways
  splitctl match jon --friends "John Smith,Alice Wang"  Fuzzy match a name`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

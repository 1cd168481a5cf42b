package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"splitbridge/internal/dates"
	"splitbridge/internal/money"
)

// parseAmountCmd represents the parse-amount command
var parseAmountCmd = &cobra.Command{
	Use:   "parse-amount <text>",
	Short: "Parse a money amount from chat text",
	Long: `Parse-amount extracts a decimal value and an optional currency from
conversational text, the same way the create_expense tool does.

Examples:
  splitctl parse-amount "$25.50"
  splitctl parse-amount "30 euros"
  splitctl parse-amount "500 yen"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := money.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if amount.Currency != "" {
			fmt.Printf("%s %s\n", amount.Value, amount.Currency)
			return
		}
		fmt.Println(amount.Value)
	},
}

// parseDateCmd represents the parse-date command
var parseDateCmd = &cobra.Command{
	Use:   "parse-date <text>",
	Short: "Parse a spoken date",
	Long: `Parse-date turns conversational dates into UTC timestamps, the same
way the create_expense tool does. Unrecognized input fails instead of
silently falling back to today.

Examples:
  splitctl parse-date today
  splitctl parse-date yesterday
  splitctl parse-date "March 5"
  splitctl parse-date 2026-01-20`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parsed, ok := dates.New().Parse(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unrecognized date %q\n", args[0])
			os.Exit(1)
		}
		fmt.Println(parsed.Format(time.RFC3339))
	},
}

func init() {
	rootCmd.AddCommand(parseAmountCmd)
	rootCmd.AddCommand(parseDateCmd)
}

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"splitbridge/internal/calculator"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <total> <participants>",
	Short: "Split a total into equal shares",
	Long: `Split divides a total among the given number of participants, one
share per line. Leftover cents land on the first share, so the shares
always sum back to the total.

Examples:
  splitctl split 100 3
  splitctl split 25.50 2`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		total, err := decimal.NewFromString(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid total %q\n", args[0])
			os.Exit(1)
		}
		participants, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid participant count %q\n", args[1])
			os.Exit(1)
		}

		shares, err := calculator.Split(total, participants)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, share := range shares {
			fmt.Println(share.StringFixed(2))
		}
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

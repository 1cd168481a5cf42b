package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"splitbridge/internal/models"
	"splitbridge/internal/resolver"
)

var (
	matchFriends   string
	matchThreshold float64
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Fuzzy match a name against a friends roster",
	Long: `Match resolves a spoken name against a comma-separated roster, the
same way create_expense resolves the person and people fields. A failed
match lists the near misses with their scores.

Examples:
  splitctl match jon --friends "John Smith,Alice Wang"
  splitctl match alexi --friends "Alexandra Stone,Priya Patel" --threshold 0.5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roster := parseRoster(matchFriends)
		if len(roster) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --friends must name at least one friend")
			os.Exit(1)
		}

		r := resolver.New(matchThreshold)
		m := r.ResolveFriend(args[0], roster)
		if m.Matched() {
			fmt.Printf("%s (score %.2f)\n", m.Friend.FullName(), m.Score)
			return
		}

		fmt.Printf("no match for %q\n", args[0])
		for _, c := range m.Candidates {
			fmt.Printf("  close: %s (score %.2f)\n", c.FullName(), r.Score(args[0], c))
		}
		os.Exit(1)
	},
}

// parseRoster builds a friends roster from "First Last,First Last,..."
// text. The first word is the first name, the rest the last name.
func parseRoster(raw string) []models.Friend {
	var friends []models.Friend
	for _, entry := range strings.Split(raw, ",") {
		name := strings.TrimSpace(entry)
		if name == "" {
			continue
		}
		first, last, _ := strings.Cut(name, " ")
		friends = append(friends, models.Friend{
			ID:        int64(len(friends) + 1),
			FirstName: first,
			LastName:  strings.TrimSpace(last),
		})
	}
	return friends
}

func init() {
	matchCmd.Flags().StringVarP(&matchFriends, "friends", "f", "", "comma-separated friend names to match against (required)")
	matchCmd.Flags().Float64VarP(&matchThreshold, "threshold", "t", resolver.DefaultThreshold, "minimum score for a match")
	_ = matchCmd.MarkFlagRequired("friends")
	rootCmd.AddCommand(matchCmd)
}

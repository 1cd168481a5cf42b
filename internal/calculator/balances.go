package calculator

import (
	"github.com/shopspring/decimal"

	"splitbridge/internal/models"
)

// Balance is one participant's position on an expense: what they put in,
// what their share was, and the difference.
type Balance struct {
	Name string
	Paid decimal.Decimal
	Owed decimal.Decimal
	Net  decimal.Decimal
}

// NetBalances computes per-person balances from an expense's user entries.
// Net is positive for people who are owed money and negative for people
// who owe. Unparseable share strings count as zero.
func NetBalances(users []models.ExpenseUserView) []Balance {
	balances := make([]Balance, 0, len(users))
	for _, u := range users {
		paid := parseOrZero(u.PaidShare)
		owed := parseOrZero(u.OwedShare)
		balances = append(balances, Balance{
			Name: u.FullName(),
			Paid: paid,
			Owed: owed,
			Net:  paid.Sub(owed),
		})
	}
	return balances
}

func parseOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

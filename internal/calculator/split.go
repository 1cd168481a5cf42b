package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// Split divides total equally among participants, to the cent.
//
// Every share is the truncated per-person amount; the leftover cents are
// distributed one each to the earliest shares, so the result always sums
// exactly to total and no two shares differ by more than one cent.
func Split(total decimal.Decimal, participants int) ([]decimal.Decimal, error) {
	if participants < 1 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total must be positive")
	}
	if !total.Equal(total.Truncate(2)) {
		return nil, fmt.Errorf("total must have at most two decimal places")
	}

	n := decimal.NewFromInt(int64(participants))
	base := total.Div(n).Truncate(2)
	remainderCents := total.Sub(base.Mul(n)).Mul(hundred).IntPart()

	shares := make([]decimal.Decimal, participants)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainderCents {
			shares[i] = base.Add(cent)
		}
	}
	return shares, nil
}

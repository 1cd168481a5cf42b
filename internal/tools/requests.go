package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// flexID accepts a JSON string or number. The manifest declares expense
// IDs as strings, but assistants send them both ways.
type flexID int64

func (id *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expense id %q", s)
	}
	*id = flexID(n)
	return nil
}

type uidRequest struct {
	UID string `json:"uid"`
}

type createExpenseRequest struct {
	UID          string   `json:"uid"`
	Amount       string   `json:"amount"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	Person       string   `json:"person"`
	People       []string `json:"people"`
	Group        string   `json:"group"`
	CurrencyCode string   `json:"currency_code"`
	Details      string   `json:"details"`
}

type listExpensesRequest struct {
	UID   string `json:"uid"`
	Limit int    `json:"limit"`
	Group string `json:"group"`
}

type expenseIDRequest struct {
	UID       string `json:"uid"`
	ExpenseID flexID `json:"expense_id"`
}

func (r *expenseIDRequest) validate() (string, bool) {
	if r.UID == "" {
		return "User ID is required", false
	}
	if r.ExpenseID == 0 {
		return "Expense ID is required. Use 'list expenses' to find expense IDs.", false
	}
	return "", true
}

type updateExpenseRequest struct {
	UID         string `json:"uid"`
	ExpenseID   flexID `json:"expense_id"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Date        string `json:"date"`
}

func (r *updateExpenseRequest) validate() (string, bool) {
	base := expenseIDRequest{UID: r.UID, ExpenseID: r.ExpenseID}
	return base.validate()
}

type addCommentRequest struct {
	UID       string `json:"uid"`
	ExpenseID flexID `json:"expense_id"`
	Comment   string `json:"comment"`
}

func (r *addCommentRequest) validate() (string, bool) {
	base := expenseIDRequest{UID: r.UID, ExpenseID: r.ExpenseID}
	return base.validate()
}

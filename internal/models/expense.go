package models

import (
	"strings"
	"time"
)

// ExpenseShare is one user's slice of an expense draft. OwedShare is a
// decimal string with two fractional digits ("3.34"); PaidShare is the
// full cost string for the payer and "0.00" for everyone else.
type ExpenseShare struct {
	UserID    int64
	PaidShare string
	OwedShare string
}

// ExpenseDraft is a fully-resolved expense ready to be submitted to the
// remote expense service.
//
// Invariants:
//   - Users[0] is the payer: their PaidShare equals Cost, everyone else
//     paid "0.00"
//   - the OwedShare values sum exactly to Cost
//   - Date is UTC
type ExpenseDraft struct {
	// Cost is the total amount as a decimal string ("25.50").
	Cost string

	// Description of the expense. Defaults to "Expense" upstream.
	Description string

	// Date the expense occurred.
	Date time.Time

	// CurrencyCode is the ISO 4217 code ("USD").
	CurrencyCode string

	// GroupID files the expense under a Splitwise group; 0 means a
	// non-group expense.
	GroupID int64

	// Details carries optional free-form notes.
	Details string

	// Users lists every participant's paid and owed share, payer first.
	Users []ExpenseShare
}

// ExpenseUserView is a participant on a remote expense, as returned by the
// expense service. Shares are decimal strings; they may be empty when the
// remote service omits them.
type ExpenseUserView struct {
	UserID    int64
	FirstName string
	LastName  string
	PaidShare string
	OwedShare string
}

// FullName joins first and last name with a single space.
func (v ExpenseUserView) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// Expense is a remote expense as returned by the expense service.
type Expense struct {
	ID           int64
	Description  string
	Cost         string
	CurrencyCode string
	Date         time.Time
	GroupID      int64
	Users        []ExpenseUserView
}

// Comment is a comment attached to a remote expense.
type Comment struct {
	ID         int64
	Content    string
	AuthorName string
	CreatedAt  time.Time
}

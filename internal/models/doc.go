// Package models defines the domain types shared across splitbridge.
//
// # Roster types
//
// The following types are read-only snapshots fetched from the Splitwise
// account service; nothing in this process mutates or stores them:
//   - Friend: someone the user can split an expense with
//   - Group: a group an expense can be filed under
//   - CurrentUser: the account expenses are created on behalf of
//
// # Expense types
//
//   - ExpenseDraft: a fully-resolved expense ready for submission
//   - ExpenseShare: one user's paid/owed slice of a draft
//   - Expense, ExpenseUserView: remote expenses as the API returns them
//   - Comment: a comment attached to a remote expense
//
// # Design Principles
//
// 1. **Exact money**: monetary values travel as exact decimal strings,
// never as floats; computed shares carry two fractional digits
// 2. **UTC everywhere**: all timestamps are UTC; formatting for display
// happens at the boundary that shows them
// 3. **Flat references**: group membership is an ID on the draft, not a
// pointer graph
package models

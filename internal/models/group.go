package models

// Group is a Splitwise group the current user belongs to. Expenses may be
// filed under a group; GroupID 0 on a draft means a non-group expense.
type Group struct {
	// ID is the Splitwise group id.
	ID int64

	// Name is the display name of the group (e.g., "Roommates").
	Name string
}

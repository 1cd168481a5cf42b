package models

import "strings"

// Friend is a Splitwise friend of the current user. Friends are candidates
// for fuzzy name resolution when an expense names who to split with.
type Friend struct {
	// ID is the friend's Splitwise user id.
	ID int64

	// FirstName is always present.
	FirstName string

	// LastName may be empty.
	LastName string

	// Email may be empty depending on the friend's privacy settings.
	Email string
}

// FullName joins first and last name with a single space. Friends without
// a last name come out as just the first name.
func (f Friend) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// CurrentUser is the authenticated Splitwise account expenses are created
// on behalf of. The current user always pays the full amount and owes the
// first share.
type CurrentUser struct {
	// ID is the account's Splitwise user id.
	ID int64

	FirstName string
	LastName  string
	Email     string

	// DefaultCurrency is the account's default currency code. The remote
	// service may omit it, in which case it is "USD".
	DefaultCurrency string
}

// FullName joins first and last name with a single space.
func (u CurrentUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

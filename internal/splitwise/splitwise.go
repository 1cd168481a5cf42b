// Package splitwise is a small client for the Splitwise REST API v3.0,
// covering the account, expense, and comment endpoints the tool server
// needs. The service layer depends on the Accounts and Expenses
// interfaces, so tests can swap in fakes without touching HTTP.
package splitwise

import (
	"context"

	"splitbridge/internal/models"
)

// ListOptions narrows an expense listing. A zero Limit falls back to the
// default page size and a zero GroupID means all groups.
type ListOptions struct {
	Limit   int
	GroupID int64
}

// Accounts reads the authenticated user's profile and social graph.
type Accounts interface {
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)
	Friends(ctx context.Context) ([]models.Friend, error)
	Groups(ctx context.Context) ([]models.Group, error)
}

// Expenses manages expense records and their comment threads.
type Expenses interface {
	CreateExpense(ctx context.Context, draft models.ExpenseDraft) (*models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	ListExpenses(ctx context.Context, opts ListOptions) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, draft models.ExpenseDraft) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	Comments(ctx context.Context, expenseID int64) ([]models.Comment, error)
	AddComment(ctx context.Context, expenseID int64, content string) (*models.Comment, error)
}

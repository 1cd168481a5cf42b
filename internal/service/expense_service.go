// Package service orchestrates the chat tool operations: parsing
// conversational input, resolving names against the Splitwise account,
// computing splits, and formatting the markdown replies.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"splitbridge/internal/calculator"
	"splitbridge/internal/dates"
	"splitbridge/internal/models"
	"splitbridge/internal/money"
	"splitbridge/internal/resolver"
	"splitbridge/internal/splitwise"
)

// Options tune an ExpenseService. Zero values select the defaults: the
// standard match threshold, no fallback currency, slog's default logger,
// and the system clock.
type Options struct {
	Threshold       float64
	DefaultCurrency string
	Logger          *slog.Logger
	Clock           func() time.Time
}

// ExpenseService implements the chat tool operations on top of a
// Splitwise account.
type ExpenseService struct {
	accounts        splitwise.Accounts
	expenses        splitwise.Expenses
	resolver        *resolver.Resolver
	dates           *dates.Parser
	defaultCurrency string
	log             *slog.Logger
}

// NewExpenseService creates a new ExpenseService backed by the given
// Splitwise account and expense APIs.
func NewExpenseService(accounts splitwise.Accounts, expenses splitwise.Expenses, opts Options) *ExpenseService {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ExpenseService{
		accounts:        accounts,
		expenses:        expenses,
		resolver:        resolver.New(opts.Threshold),
		dates:           dates.NewAt(clock),
		defaultCurrency: opts.DefaultCurrency,
		log:             log,
	}
}

// CreateExpenseRequest is the conversational input for a new expense.
// Person and People both name friends to split with; they are combined.
type CreateExpenseRequest struct {
	Amount       string
	Description  string
	Date         string
	Person       string
	People       []string
	Group        string
	CurrencyCode string
	Details      string
}

// CreateExpenseResult reports a created expense along with the resolved
// pieces that shaped it.
type CreateExpenseResult struct {
	Expense  *models.Expense
	Friends  []models.Friend
	Group    *models.Group
	Currency string
	Share    string
	Message  string
}

// CreateExpense creates an equal split between the current user and the
// named friends. The current user pays the full amount; leftover cents
// land on their share so the total always balances.
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*CreateExpenseResult, error) {
	if strings.TrimSpace(req.Amount) == "" {
		return nil, &ValidationError{Msg: "Amount is required"}
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.Value.IsPositive() {
		return nil, &ValidationError{Msg: "Amount must be greater than zero"}
	}
	if !amount.Value.Equal(amount.Value.Truncate(2)) {
		return nil, &ValidationError{Msg: "Amount must have at most two decimal places"}
	}

	names := make([]string, 0, len(req.People)+1)
	if strings.TrimSpace(req.Person) != "" {
		names = append(names, req.Person)
	}
	names = append(names, req.People...)
	if len(names) == 0 {
		return nil, &ValidationError{Msg: "Please specify at least one person to split with (e.g., 'with John' or 'with Alice and Bob')"}
	}

	date, ok := s.dates.Parse(req.Date)
	if !ok {
		s.log.Warn("unrecognized expense date, using today", "date", req.Date)
	}

	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		s.log.Error("failed to get current user", "error", err)
		return nil, &UserError{Msg: "Could not get your Splitwise user info. Please reconnect your account.", Err: err}
	}

	friends, err := s.accounts.Friends(ctx)
	if err != nil {
		s.log.Error("failed to get friends", "error", err)
	}
	if len(friends) == 0 {
		return nil, &UserError{Msg: "Could not fetch your friends list. Please make sure you have friends on Splitwise.", Err: err}
	}

	matched := make([]models.Friend, 0, len(names))
	for _, name := range names {
		m := s.resolver.ResolveFriend(name, friends)
		if !m.Matched() {
			return nil, friendNotFound(name, m.Candidates)
		}
		matched = append(matched, *m.Friend)
	}

	seen := make(map[int64]bool, len(matched))
	for _, f := range matched {
		if seen[f.ID] {
			return nil, &DuplicateParticipantError{}
		}
		seen[f.ID] = true
	}

	var group *models.Group
	if strings.TrimSpace(req.Group) != "" {
		groups, err := s.accounts.Groups(ctx)
		if err != nil {
			s.log.Warn("failed to get groups", "error", err)
		}
		gm := s.resolver.ResolveGroup(req.Group, groups)
		if !gm.Matched() {
			return nil, groupNotFound(req.Group, groups)
		}
		group = gm.Group
	}

	shares, err := calculator.Split(amount.Value, 1+len(matched))
	if err != nil {
		return nil, fmt.Errorf("failed to split %s %d ways: %w", amount.Value, 1+len(matched), err)
	}

	description := req.Description
	if description == "" {
		description = "Expense"
	}
	currency := firstNonEmpty(req.CurrencyCode, amount.Currency, user.DefaultCurrency, s.defaultCurrency)

	draft := models.ExpenseDraft{
		Cost:         amount.Value.String(),
		Description:  description,
		Date:         date,
		CurrencyCode: currency,
		Details:      req.Details,
	}
	if group != nil {
		draft.GroupID = group.ID
	}
	draft.Users = append(draft.Users, models.ExpenseShare{
		UserID:    user.ID,
		PaidShare: amount.Value.String(),
		OwedShare: shares[0].StringFixed(2),
	})
	for i, f := range matched {
		draft.Users = append(draft.Users, models.ExpenseShare{
			UserID:    f.ID,
			PaidShare: "0.00",
			OwedShare: shares[i+1].StringFixed(2),
		})
	}

	s.log.Info("creating expense",
		"cost", draft.Cost,
		"description", draft.Description,
		"group_id", draft.GroupID,
		"users", len(draft.Users))

	created, err := s.expenses.CreateExpense(ctx, draft)
	if err != nil {
		s.log.Error("failed to create expense", "error", err)
		return nil, err
	}

	// The displayed per-person share is a friend's base share; the
	// payer's own share absorbs the leftover cents.
	share := shares[0]
	if len(shares) > 1 {
		share = shares[1]
	}
	displayCurrency := currency
	if displayCurrency == "" {
		displayCurrency = "USD"
	}

	return &CreateExpenseResult{
		Expense:  created,
		Friends:  matched,
		Group:    group,
		Currency: currency,
		Share:    share.StringFixed(2),
		Message:  createMessage(description, amount.Value.String(), matched, group, displayCurrency, share.StringFixed(2), date),
	}, nil
}

// ListFriends returns the friends roster formatted for chat.
func (s *ExpenseService) ListFriends(ctx context.Context) (string, error) {
	friends, err := s.accounts.Friends(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get friends: %w", err)
	}
	if len(friends) == 0 {
		return "You don't have any friends on Splitwise yet.", nil
	}
	return friendsMessage(friends), nil
}

// ListExpensesRequest narrows an expense listing. An unresolvable Group
// name is ignored rather than failing the listing.
type ListExpensesRequest struct {
	Limit int
	Group string
}

// ListExpenses returns recent expenses formatted for chat, newest first
// as Splitwise returns them.
func (s *ExpenseService) ListExpenses(ctx context.Context, req ListExpensesRequest) (string, error) {
	opts := splitwise.ListOptions{Limit: req.Limit}
	if strings.TrimSpace(req.Group) != "" {
		groups, err := s.accounts.Groups(ctx)
		if err != nil {
			s.log.Warn("failed to get groups", "error", err)
		}
		if gm := s.resolver.ResolveGroup(req.Group, groups); gm.Matched() {
			opts.GroupID = gm.Group.ID
		}
	}

	expenses, err := s.expenses.ListExpenses(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("failed to list expenses: %w", err)
	}
	if len(expenses) == 0 {
		return "No expenses found.", nil
	}
	return expensesMessage(expenses), nil
}

// ExpenseDetails returns one expense with its participants formatted for
// chat.
func (s *ExpenseService) ExpenseDetails(ctx context.Context, id int64) (string, error) {
	expense, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		s.log.Error("failed to get expense", "expense_id", id, "error", err)
		return "", &UserError{Msg: fmt.Sprintf("Could not find expense with ID %d", id), Err: err}
	}
	return detailsMessage(expense), nil
}

// UpdateExpenseRequest carries the fields to change on an expense. Empty
// fields keep their current values.
type UpdateExpenseRequest struct {
	ExpenseID   int64
	Description string
	Cost        string
	Date        string
}

// UpdateExpense edits an expense's description, cost, or date. A cost
// change re-splits the new amount equally among the existing
// participants, keeping the current payer.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req UpdateExpenseRequest) (string, error) {
	expense, err := s.expenses.GetExpense(ctx, req.ExpenseID)
	if err != nil {
		s.log.Error("failed to get expense", "expense_id", req.ExpenseID, "error", err)
		return "", &UserError{Msg: fmt.Sprintf("Could not find expense with ID %d", req.ExpenseID), Err: err}
	}

	draft := models.ExpenseDraft{
		Cost:         expense.Cost,
		Description:  expense.Description,
		Date:         expense.Date,
		CurrencyCode: expense.CurrencyCode,
		GroupID:      expense.GroupID,
	}

	var updates []string
	if req.Description != "" {
		draft.Description = req.Description
		updates = append(updates, fmt.Sprintf("Description: %s", req.Description))
	}
	if req.Cost != "" {
		amount, err := money.Parse(req.Cost)
		if err != nil {
			return "", &ValidationError{Msg: fmt.Sprintf("Invalid cost: %s", req.Cost)}
		}
		draft.Cost = amount.Value.String()
		draft.Users, err = resplit(amount.Value, expense.Users)
		if err != nil {
			return "", &ValidationError{Msg: fmt.Sprintf("Invalid cost: %s", req.Cost)}
		}
		updates = append(updates, fmt.Sprintf("Cost: $%s", amount.Value))
	}
	if req.Date != "" {
		date, ok := s.dates.Parse(req.Date)
		if !ok {
			s.log.Warn("unrecognized expense date, using today", "date", req.Date)
		}
		draft.Date = date
		updates = append(updates, fmt.Sprintf("Date: %s", date.Format(dateLong)))
	}

	if len(updates) == 0 {
		return "", &ValidationError{Msg: "No updates specified. Provide description, cost, or date to update."}
	}

	if _, err := s.expenses.UpdateExpense(ctx, req.ExpenseID, draft); err != nil {
		s.log.Error("failed to update expense", "expense_id", req.ExpenseID, "error", err)
		return "", err
	}
	return updateMessage(updates), nil
}

// resplit divides a new cost equally among an expense's existing
// participants. The participant who paid the most keeps paying the full
// amount; ties keep the earliest entry.
func resplit(cost decimal.Decimal, users []models.ExpenseUserView) ([]models.ExpenseShare, error) {
	if len(users) == 0 {
		return nil, nil
	}
	shares, err := calculator.Split(cost, len(users))
	if err != nil {
		return nil, err
	}

	balances := calculator.NetBalances(users)
	payer := 0
	for i := range balances {
		if balances[i].Paid.GreaterThan(balances[payer].Paid) {
			payer = i
		}
	}

	out := make([]models.ExpenseShare, len(users))
	next := 1
	for i, u := range users {
		share := models.ExpenseShare{UserID: u.UserID, PaidShare: "0.00"}
		if i == payer {
			share.PaidShare = cost.String()
			share.OwedShare = shares[0].StringFixed(2)
		} else {
			share.OwedShare = shares[next].StringFixed(2)
			next++
		}
		out[i] = share
	}
	return out, nil
}

// DeleteExpense removes an expense. The record is fetched first so the
// confirmation can name what was deleted; when that lookup fails the
// deletion still proceeds.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (string, error) {
	description := "Expense"
	cost := "unknown"
	if expense, err := s.expenses.GetExpense(ctx, id); err == nil {
		if expense.Description != "" {
			description = expense.Description
		}
		cost = expense.Cost
	}

	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		s.log.Error("failed to delete expense", "expense_id", id, "error", err)
		return "", err
	}
	return deleteMessage(description, cost), nil
}

// ExpenseComments returns an expense's comment thread formatted for chat.
func (s *ExpenseService) ExpenseComments(ctx context.Context, id int64) (string, error) {
	expense, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		s.log.Error("failed to get expense", "expense_id", id, "error", err)
		return "", &UserError{Msg: fmt.Sprintf("Could not find expense with ID %d", id), Err: err}
	}
	description := expense.Description
	if description == "" {
		description = "Expense"
	}

	comments, err := s.expenses.Comments(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get comments: %w", err)
	}
	return commentsMessage(description, comments), nil
}

// AddComment posts a comment on an expense.
func (s *ExpenseService) AddComment(ctx context.Context, expenseID int64, comment string) (string, error) {
	if strings.TrimSpace(comment) == "" {
		return "", &ValidationError{Msg: "Comment text is required."}
	}
	if _, err := s.expenses.AddComment(ctx, expenseID, comment); err != nil {
		s.log.Error("failed to add comment", "expense_id", expenseID, "error", err)
		return "", err
	}
	return addCommentMessage(comment), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

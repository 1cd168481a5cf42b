package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"splitbridge/internal/models"
)

// DefaultBaseURL is the production Splitwise API root.
const DefaultBaseURL = "https://secure.splitwise.com/api/v3.0"

// wireTime is the timestamp layout Splitwise accepts in requests.
const wireTime = "2006-01-02T15:04:05Z"

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Client talks to the Splitwise REST API with OAuth2 bearer
// authentication. It implements Accounts and Expenses.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ Accounts = (*Client)(nil)
	_ Expenses = (*Client)(nil)
)

// New returns a Client that authenticates every request with the given
// personal access token. An empty baseURL selects the production API.
func New(baseURL, accessToken string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 30 * time.Second
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// APIError is an error response from Splitwise, either a non-2xx status
// or a 2xx body whose errors field is populated.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("splitwise returned status %d", e.StatusCode)
}

// errorsField matches the two error shapes Splitwise uses. Some endpoints
// report failures inside a 200 response, so envelopes embed this and
// callers check messages() after decoding.
type errorsField struct {
	ErrorMessage string              `json:"error"`
	Errors       map[string][]string `json:"errors"`
}

func (f errorsField) messages() []string {
	var msgs []string
	if f.ErrorMessage != "" {
		msgs = append(msgs, f.ErrorMessage)
	}
	keys := make([]string, 0, len(f.Errors))
	for k := range f.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msgs = append(msgs, f.Errors[k]...)
	}
	return msgs
}

func (c *Client) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	var env struct {
		User userDTO `json:"user"`
	}
	if err := c.get(ctx, "/get_current_user", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	currency := env.User.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}
	return &models.CurrentUser{
		ID:              env.User.ID,
		FirstName:       env.User.FirstName,
		LastName:        env.User.LastName,
		Email:           env.User.Email,
		DefaultCurrency: currency,
	}, nil
}

func (c *Client) Friends(ctx context.Context) ([]models.Friend, error) {
	var env struct {
		Friends []userDTO `json:"friends"`
	}
	if err := c.get(ctx, "/get_friends", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	friends := make([]models.Friend, 0, len(env.Friends))
	for _, dto := range env.Friends {
		friends = append(friends, models.Friend{
			ID:        dto.ID,
			FirstName: dto.FirstName,
			LastName:  dto.LastName,
			Email:     dto.Email,
		})
	}
	return friends, nil
}

func (c *Client) Groups(ctx context.Context) ([]models.Group, error) {
	var env struct {
		Groups []groupDTO `json:"groups"`
	}
	if err := c.get(ctx, "/get_groups", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}
	groups := make([]models.Group, 0, len(env.Groups))
	for _, dto := range env.Groups {
		groups = append(groups, models.Group{ID: dto.ID, Name: dto.Name})
	}
	return groups, nil
}

func (c *Client) CreateExpense(ctx context.Context, draft models.ExpenseDraft) (*models.Expense, error) {
	var env expensesEnvelope
	if err := c.postForm(ctx, "/create_expense", draftForm(draft), &env); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	if len(env.Expenses) == 0 {
		return nil, fmt.Errorf("splitwise returned no expense")
	}
	expense := toExpense(env.Expenses[0])
	return &expense, nil
}

func (c *Client) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	var env struct {
		Expense expenseDTO `json:"expense"`
		errorsField
	}
	if err := c.get(ctx, "/get_expense/"+strconv.FormatInt(id, 10), nil, &env); err != nil {
		return nil, fmt.Errorf("failed to get expense %d: %w", id, err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	expense := toExpense(env.Expense)
	return &expense, nil
}

func (c *Client) ListExpenses(ctx context.Context, opts ListOptions) ([]models.Expense, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if opts.GroupID != 0 {
		query.Set("group_id", strconv.FormatInt(opts.GroupID, 10))
	}

	var env expensesEnvelope
	if err := c.get(ctx, "/get_expenses", query, &env); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses := make([]models.Expense, 0, len(env.Expenses))
	for _, dto := range env.Expenses {
		expenses = append(expenses, toExpense(dto))
	}
	return expenses, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, draft models.ExpenseDraft) (*models.Expense, error) {
	var env expensesEnvelope
	if err := c.postForm(ctx, "/update_expense/"+strconv.FormatInt(id, 10), draftForm(draft), &env); err != nil {
		return nil, fmt.Errorf("failed to update expense %d: %w", id, err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	if len(env.Expenses) == 0 {
		return nil, fmt.Errorf("splitwise returned no expense")
	}
	expense := toExpense(env.Expenses[0])
	return &expense, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	var env struct {
		Success bool `json:"success"`
		errorsField
	}
	if err := c.postForm(ctx, "/delete_expense/"+strconv.FormatInt(id, 10), url.Values{}, &env); err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	if !env.Success {
		return fmt.Errorf("splitwise did not confirm deleting expense %d", id)
	}
	return nil
}

func (c *Client) Comments(ctx context.Context, expenseID int64) ([]models.Comment, error) {
	query := url.Values{}
	query.Set("expense_id", strconv.FormatInt(expenseID, 10))

	var env struct {
		Comments []commentDTO `json:"comments"`
		errorsField
	}
	if err := c.get(ctx, "/get_comments", query, &env); err != nil {
		return nil, fmt.Errorf("failed to get comments for expense %d: %w", expenseID, err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	comments := make([]models.Comment, 0, len(env.Comments))
	for _, dto := range env.Comments {
		comments = append(comments, toComment(dto))
	}
	return comments, nil
}

func (c *Client) AddComment(ctx context.Context, expenseID int64, content string) (*models.Comment, error) {
	form := url.Values{}
	form.Set("expense_id", strconv.FormatInt(expenseID, 10))
	form.Set("content", content)

	var env struct {
		Comment commentDTO `json:"comment"`
		errorsField
	}
	if err := c.postForm(ctx, "/create_comment", form, &env); err != nil {
		return nil, fmt.Errorf("failed to add comment to expense %d: %w", expenseID, err)
	}
	if msgs := env.messages(); len(msgs) > 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Messages: msgs}
	}
	comment := toComment(env.Comment)
	return &comment, nil
}

// Wire types. Splitwise nests the acting user inside expense entries and
// comments; group_id is null for non-group expenses.

type userDTO struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	DefaultCurrency string `json:"default_currency"`
}

type groupDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type expenseUserDTO struct {
	User      userDTO `json:"user"`
	UserID    int64   `json:"user_id"`
	PaidShare string  `json:"paid_share"`
	OwedShare string  `json:"owed_share"`
}

type expenseDTO struct {
	ID           int64            `json:"id"`
	Description  string           `json:"description"`
	Cost         string           `json:"cost"`
	CurrencyCode string           `json:"currency_code"`
	Date         string           `json:"date"`
	GroupID      *int64           `json:"group_id"`
	Users        []expenseUserDTO `json:"users"`
}

type commentDTO struct {
	ID        int64    `json:"id"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"created_at"`
	User      *userDTO `json:"user"`
}

type expensesEnvelope struct {
	Expenses []expenseDTO `json:"expenses"`
	errorsField
}

func toExpense(dto expenseDTO) models.Expense {
	date, _ := time.Parse(time.RFC3339, dto.Date)
	expense := models.Expense{
		ID:           dto.ID,
		Description:  dto.Description,
		Cost:         dto.Cost,
		CurrencyCode: dto.CurrencyCode,
		Date:         date.UTC(),
		Users:        make([]models.ExpenseUserView, 0, len(dto.Users)),
	}
	if dto.GroupID != nil {
		expense.GroupID = *dto.GroupID
	}
	for _, u := range dto.Users {
		id := u.User.ID
		if id == 0 {
			id = u.UserID
		}
		expense.Users = append(expense.Users, models.ExpenseUserView{
			UserID:    id,
			FirstName: u.User.FirstName,
			LastName:  u.User.LastName,
			PaidShare: u.PaidShare,
			OwedShare: u.OwedShare,
		})
	}
	return expense
}

func toComment(dto commentDTO) models.Comment {
	created, _ := time.Parse(time.RFC3339, dto.CreatedAt)
	comment := models.Comment{
		ID:        dto.ID,
		Content:   dto.Content,
		CreatedAt: created.UTC(),
	}
	if dto.User != nil {
		comment.AuthorName = strings.TrimSpace(dto.User.FirstName + " " + dto.User.LastName)
	}
	return comment
}

// draftForm flattens an expense draft into the users__N__field form keys
// the API expects.
func draftForm(draft models.ExpenseDraft) url.Values {
	form := url.Values{}
	form.Set("cost", draft.Cost)
	form.Set("description", draft.Description)
	form.Set("group_id", strconv.FormatInt(draft.GroupID, 10))
	if !draft.Date.IsZero() {
		form.Set("date", draft.Date.UTC().Format(wireTime))
	}
	if draft.CurrencyCode != "" {
		form.Set("currency_code", draft.CurrencyCode)
	}
	if draft.Details != "" {
		form.Set("details", draft.Details)
	}
	for i, u := range draft.Users {
		prefix := fmt.Sprintf("users__%d__", i)
		form.Set(prefix+"user_id", strconv.FormatInt(u.UserID, 10))
		form.Set(prefix+"paid_share", u.PaidShare)
		form.Set(prefix+"owed_share", u.OwedShare)
	}
	return form
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fields errorsField
		_ = json.Unmarshal(body, &fields)
		return &APIError{StatusCode: resp.StatusCode, Messages: fields.messages()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

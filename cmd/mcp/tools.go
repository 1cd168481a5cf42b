package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"splitbridge/internal/service"
)

// toolServer adapts ExpenseService methods to MCP tool handlers. The
// process serves a single Splitwise account, so tool inputs carry no
// user identifier.
type toolServer struct {
	svc *service.ExpenseService
}

func registerTools(server *mcp.Server, ts *toolServer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_expense",
		Description: "Create a Splitwise expense and split it with friends. Use this when the user wants to split costs, share expenses, divide bills, or log shared purchases with people. The expense will be split equally among the user and the specified friends. By default creates a non-group expense unless a group is specified.",
	}, ts.createExpense)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_friends",
		Description: "Get the user's Splitwise friends list. Use this when the user wants to see their friends, check who they can split expenses with, or find someone's name on Splitwise.",
	}, ts.getFriends)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_expenses",
		Description: "List recent Splitwise expenses. Use this when the user wants to see their expenses, check recent splits, view expense history, or find an expense ID.",
	}, ts.listExpenses)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_expense_comment",
		Description: "Add a comment to a Splitwise expense. Use this when the user wants to comment on, note, or add a message to an expense.",
	}, ts.addComment)
}

type createExpenseInput struct {
	Amount       string   `json:"amount,omitempty" jsonschema:"the total expense amount (e.g. '25', '25.50', '$30')"`
	Description  string   `json:"description,omitempty" jsonschema:"what the expense is for (e.g. 'lunch', 'groceries')"`
	Date         string   `json:"date,omitempty" jsonschema:"when the expense occurred: 'today', 'yesterday', or a date like 'Jan 15'"`
	Person       string   `json:"person,omitempty" jsonschema:"name of a single person to split with (fuzzy matched)"`
	People       []string `json:"people,omitempty" jsonschema:"names of multiple people to split with (each fuzzy matched)"`
	Group        string   `json:"group,omitempty" jsonschema:"name of a Splitwise group to add this expense to (fuzzy matched)"`
	CurrencyCode string   `json:"currency_code,omitempty" jsonschema:"currency code (e.g. 'USD', 'EUR', 'GBP')"`
	Details      string   `json:"details,omitempty" jsonschema:"additional notes about the expense"`
}

type createExpenseOutput struct {
	ExpenseID int64  `json:"expense_id"`
	Share     string `json:"share" jsonschema:"each friend's share of the total"`
	Currency  string `json:"currency"`
	Message   string `json:"message"`
}

type getFriendsInput struct{}

type listExpensesInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of expenses to return (default 10, max 50)"`
	Group string `json:"group,omitempty" jsonschema:"filter by group name (fuzzy matched)"`
}

type addCommentInput struct {
	ExpenseID int64  `json:"expense_id,omitempty" jsonschema:"the expense ID to comment on"`
	Comment   string `json:"comment,omitempty" jsonschema:"the comment text to add"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func (ts *toolServer) createExpense(ctx context.Context, req *mcp.CallToolRequest, in *createExpenseInput) (*mcp.CallToolResult, *createExpenseOutput, error) {
	res, err := ts.svc.CreateExpense(ctx, service.CreateExpenseRequest{
		Amount:       in.Amount,
		Description:  in.Description,
		Date:         in.Date,
		Person:       in.Person,
		People:       in.People,
		Group:        in.Group,
		CurrencyCode: in.CurrencyCode,
		Details:      in.Details,
	})
	if err != nil {
		return errorResult("Failed to create expense", err), nil, nil
	}
	out := &createExpenseOutput{
		ExpenseID: res.Expense.ID,
		Share:     res.Share,
		Currency:  res.Currency,
		Message:   res.Message,
	}
	return textResult(res.Message), out, nil
}

func (ts *toolServer) getFriends(ctx context.Context, req *mcp.CallToolRequest, in *getFriendsInput) (*mcp.CallToolResult, *messageOutput, error) {
	msg, err := ts.svc.ListFriends(ctx)
	if err != nil {
		return errorResult("Failed to get friends", err), nil, nil
	}
	return textResult(msg), &messageOutput{Message: msg}, nil
}

func (ts *toolServer) listExpenses(ctx context.Context, req *mcp.CallToolRequest, in *listExpensesInput) (*mcp.CallToolResult, *messageOutput, error) {
	msg, err := ts.svc.ListExpenses(ctx, service.ListExpensesRequest{
		Limit: in.Limit,
		Group: in.Group,
	})
	if err != nil {
		return errorResult("Failed to list expenses", err), nil, nil
	}
	return textResult(msg), &messageOutput{Message: msg}, nil
}

func (ts *toolServer) addComment(ctx context.Context, req *mcp.CallToolRequest, in *addCommentInput) (*mcp.CallToolResult, *messageOutput, error) {
	if in.ExpenseID == 0 {
		return errorResult("Failed to add comment", &service.ValidationError{Msg: "Expense ID is required. Use 'list expenses' to find expense IDs."}), nil, nil
	}
	msg, err := ts.svc.AddComment(ctx, in.ExpenseID, in.Comment)
	if err != nil {
		return errorResult("Failed to add comment", err), nil, nil
	}
	return textResult(msg), &messageOutput{Message: msg}, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult turns a service failure into an in-band tool error so the
// model sees the guidance instead of a protocol fault.
func errorResult(prefix string, err error) *mcp.CallToolResult {
	text, ok := service.UserFacing(err)
	if !ok {
		text = fmt.Sprintf("%s: %s", prefix, err)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitbridge/internal/models"
	"splitbridge/internal/service"
	"splitbridge/internal/splitwise"
)

type fakeAccounts struct {
	user    *models.CurrentUser
	friends []models.Friend
	groups  []models.Group
}

func (f *fakeAccounts) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	return f.user, nil
}

func (f *fakeAccounts) Friends(ctx context.Context) ([]models.Friend, error) {
	return f.friends, nil
}

func (f *fakeAccounts) Groups(ctx context.Context) ([]models.Group, error) {
	return f.groups, nil
}

type fakeExpenses struct {
	expense   *models.Expense
	listed    []models.Expense
	listErr   error
	deletedID int64
}

func (f *fakeExpenses) CreateExpense(ctx context.Context, draft models.ExpenseDraft) (*models.Expense, error) {
	return &models.Expense{ID: 555, Description: draft.Description, Cost: draft.Cost}, nil
}

func (f *fakeExpenses) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	if f.expense == nil {
		return nil, fmt.Errorf("no such expense")
	}
	return f.expense, nil
}

func (f *fakeExpenses) ListExpenses(ctx context.Context, opts splitwise.ListOptions) ([]models.Expense, error) {
	return f.listed, f.listErr
}

func (f *fakeExpenses) UpdateExpense(ctx context.Context, id int64, draft models.ExpenseDraft) (*models.Expense, error) {
	return &models.Expense{ID: id}, nil
}

func (f *fakeExpenses) DeleteExpense(ctx context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeExpenses) Comments(ctx context.Context, expenseID int64) ([]models.Comment, error) {
	return nil, nil
}

func (f *fakeExpenses) AddComment(ctx context.Context, expenseID int64, content string) (*models.Comment, error) {
	return &models.Comment{ID: 9, Content: content}, nil
}

func testAccounts() *fakeAccounts {
	return &fakeAccounts{
		user: &models.CurrentUser{ID: 42, FirstName: "Me", DefaultCurrency: "USD"},
		friends: []models.Friend{
			{ID: 7, FirstName: "John", LastName: "Smith"},
		},
	}
}

func newTestServer(t *testing.T, accounts splitwise.Accounts, expenses splitwise.Expenses) *httptest.Server {
	t.Helper()
	svc := service.NewExpenseService(accounts, expenses, service.Options{
		Logger: slog.New(slog.DiscardHandler),
		Clock: func() time.Time {
			return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	mux := http.NewServeMux()
	NewHandler(svc, slog.New(slog.DiscardHandler)).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (int, Response) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateExpenseTool(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	status, resp := postJSON(t, srv.URL+"/tools/create_expense",
		`{"uid":"u1","amount":"$30","description":"Dinner","person":"john","date":"2025-03-05"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp.Error)
	assert.Contains(t, resp.Result, "**Expense Created!**")
	assert.Contains(t, resp.Result, "Split with: John Smith")
	assert.Contains(t, resp.Result, "Each person owes: $15.00")
	assert.Contains(t, resp.Result, "Date: March 05, 2025")
}

func TestCreateExpenseToolUserErrors(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing uid",
			body:    `{"amount":"10","person":"john"}`,
			wantErr: "User ID is required",
		},
		{
			name:    "bad amount",
			body:    `{"uid":"u1","amount":"abc","person":"john"}`,
			wantErr: "Invalid amount: abc",
		},
		{
			name:    "unknown friend",
			body:    `{"uid":"u1","amount":"10","person":"xavier"}`,
			wantErr: "Could not find friend 'xavier' in your Splitwise friends list.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := postJSON(t, srv.URL+"/tools/create_expense", tt.body)
			assert.Equal(t, http.StatusOK, status, "tool errors still answer 200")
			assert.Equal(t, tt.wantErr, resp.Error)
			assert.Empty(t, resp.Result)
		})
	}
}

func TestExpenseIDRequired(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	for _, path := range []string{
		"/tools/get_expense_details",
		"/tools/update_expense",
		"/tools/delete_expense",
		"/tools/get_expense_comments",
		"/tools/add_expense_comment",
	} {
		t.Run(path, func(t *testing.T) {
			status, resp := postJSON(t, srv.URL+path, `{"uid":"u1"}`)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "Expense ID is required. Use 'list expenses' to find expense IDs.", resp.Error)
		})
	}
}

func TestExpenseIDStringOrNumber(t *testing.T) {
	for _, body := range []string{
		`{"uid":"u1","expense_id":"555"}`,
		`{"uid":"u1","expense_id":555}`,
	} {
		t.Run(body, func(t *testing.T) {
			expenses := &fakeExpenses{expense: &models.Expense{ID: 555, Description: "Dinner", Cost: "30.0"}}
			srv := newTestServer(t, testAccounts(), expenses)

			status, resp := postJSON(t, srv.URL+"/tools/delete_expense", body)
			assert.Equal(t, http.StatusOK, status)
			assert.Empty(t, resp.Error)
			assert.Equal(t, int64(555), expenses.deletedID)
		})
	}
}

func TestListExpensesToolFailure(t *testing.T) {
	expenses := &fakeExpenses{listErr: fmt.Errorf("upstream down")}
	srv := newTestServer(t, testAccounts(), expenses)

	status, resp := postJSON(t, srv.URL+"/tools/list_expenses", `{"uid":"u1"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.Error, "Failed to list expenses:")
	assert.Contains(t, resp.Error, "upstream down")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	resp, err := http.Get(srv.URL + "/tools/get_friends")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	status, resp := postJSON(t, srv.URL+"/tools/create_expense", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", resp.Error)
}

func TestManifest(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	resp, err := http.Get(srv.URL + "/.well-known/omi-tools.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var manifest Manifest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&manifest))
	require.Len(t, manifest.Tools, 8)

	names := make([]string, 0, len(manifest.Tools))
	for _, tool := range manifest.Tools {
		names = append(names, tool.Name)
		assert.Equal(t, "POST", tool.Method)
		assert.True(t, tool.AuthRequired)
		assert.NotEmpty(t, tool.StatusMessage)
		assert.NotNil(t, tool.Parameters.Required)
	}
	assert.Equal(t, []string{
		"create_expense",
		"get_friends",
		"list_expenses",
		"get_expense_details",
		"update_expense",
		"delete_expense",
		"get_expense_comments",
		"add_expense_comment",
	}, names)

	create := manifest.Tools[0]
	assert.Equal(t, "/tools/create_expense", create.Endpoint)
	assert.Equal(t, []string{"amount"}, create.Parameters.Required)
	people := create.Parameters.Properties["people"]
	require.NotNil(t, people.Items)
	assert.Equal(t, "array", people.Type)
	assert.Equal(t, "string", people.Items.Type)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testAccounts(), &fakeExpenses{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

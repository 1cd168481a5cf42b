package splitwise

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitbridge/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token")
}

func TestCurrentUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get_current_user", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"user":{"id":42,"first_name":"John","last_name":"Smith","email":"john@example.com","default_currency":"USD"}}`)
	})

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "John Smith", user.FullName())
	assert.Equal(t, "USD", user.DefaultCurrency)
}

func TestCurrentUserDefaultCurrencyFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user":{"id":42,"first_name":"John"}}`)
	})

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", user.DefaultCurrency)
}

func TestFriends(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_friends", r.URL.Path)
		fmt.Fprint(w, `{"friends":[
			{"id":1,"first_name":"Alexandra","last_name":"Stone","email":"alex@example.com"},
			{"id":2,"first_name":"Priya","last_name":"","email":"priya@example.com"}
		]}`)
	})

	friends, err := client.Friends(context.Background())
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "Alexandra Stone", friends[0].FullName())
	assert.Equal(t, "Priya", friends[1].FullName())
}

func TestCreateExpense(t *testing.T) {
	draft := models.ExpenseDraft{
		Cost:         "30.00",
		Description:  "Dinner",
		Date:         time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		GroupID:      0,
		Users: []models.ExpenseShare{
			{UserID: 42, PaidShare: "30.00", OwedShare: "10.00"},
			{UserID: 7, PaidShare: "0.00", OwedShare: "10.00"},
			{UserID: 9, PaidShare: "0.00", OwedShare: "10.00"},
		},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create_expense", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "30.00", r.PostForm.Get("cost"))
		assert.Equal(t, "Dinner", r.PostForm.Get("description"))
		assert.Equal(t, "2025-03-05T00:00:00Z", r.PostForm.Get("date"))
		assert.Equal(t, "0", r.PostForm.Get("group_id"))
		assert.Equal(t, "USD", r.PostForm.Get("currency_code"))
		assert.Equal(t, "42", r.PostForm.Get("users__0__user_id"))
		assert.Equal(t, "30.00", r.PostForm.Get("users__0__paid_share"))
		assert.Equal(t, "10.00", r.PostForm.Get("users__0__owed_share"))
		assert.Equal(t, "7", r.PostForm.Get("users__1__user_id"))
		assert.Equal(t, "0.00", r.PostForm.Get("users__1__paid_share"))
		assert.Equal(t, "9", r.PostForm.Get("users__2__user_id"))

		fmt.Fprint(w, `{"expenses":[{
			"id":555,
			"description":"Dinner",
			"cost":"30.0",
			"currency_code":"USD",
			"date":"2025-03-05T00:00:00Z",
			"group_id":null,
			"users":[
				{"user":{"id":42,"first_name":"John","last_name":"Smith"},"paid_share":"30.0","owed_share":"10.0"},
				{"user":{"id":7,"first_name":"Alexandra","last_name":"Stone"},"paid_share":"0.0","owed_share":"10.0"}
			]
		}],"errors":{}}`)
	})

	expense, err := client.CreateExpense(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(555), expense.ID)
	assert.Equal(t, int64(0), expense.GroupID, "null group_id maps to zero")
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), expense.Date)
	require.Len(t, expense.Users, 2)
	assert.Equal(t, int64(42), expense.Users[0].UserID)
	assert.Equal(t, "John Smith", expense.Users[0].FullName())
}

func TestCreateExpenseSplitwiseErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"expenses":[],"errors":{"base":["You cannot add an expense for other people only."]}}`)
	})

	_, err := client.CreateExpense(context.Background(), models.ExpenseDraft{Cost: "10.00"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"You cannot add an expense for other people only."}, apiErr.Messages)
	assert.Contains(t, err.Error(), "You cannot add an expense for other people only.")
}

func TestListExpensesLimits(t *testing.T) {
	tests := []struct {
		name      string
		opts      ListOptions
		wantLimit string
		wantGroup string
	}{
		{name: "default limit", opts: ListOptions{}, wantLimit: "10"},
		{name: "explicit limit", opts: ListOptions{Limit: 5}, wantLimit: "5"},
		{name: "limit capped", opts: ListOptions{Limit: 999}, wantLimit: "50"},
		{name: "group filter", opts: ListOptions{Limit: 5, GroupID: 77}, wantLimit: "5", wantGroup: "77"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/get_expenses", r.URL.Path)
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))
				assert.Equal(t, tt.wantGroup, r.URL.Query().Get("group_id"))
				fmt.Fprint(w, `{"expenses":[]}`)
			})

			_, err := client.ListExpenses(context.Background(), tt.opts)
			require.NoError(t, err)
		})
	}
}

func TestGetExpenseNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":{"expense":["Invalid API request: record not found"]}}`)
	})

	_, err := client.GetExpense(context.Background(), 999)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, []string{"Invalid API request: record not found"}, apiErr.Messages)
}

func TestDeleteExpense(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/delete_expense/555", r.URL.Path)
			fmt.Fprint(w, `{"success":true}`)
		})
		require.NoError(t, client.DeleteExpense(context.Background(), 555))
	})

	t.Run("unconfirmed", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":false}`)
		})
		require.Error(t, client.DeleteExpense(context.Background(), 555))
	})
}

func TestComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_comments", r.URL.Path)
		assert.Equal(t, "555", r.URL.Query().Get("expense_id"))
		fmt.Fprint(w, `{"comments":[
			{"id":1,"content":"I paid cash","created_at":"2025-03-05T18:30:00Z","user":{"id":7,"first_name":"Alexandra","last_name":"Stone"}},
			{"id":2,"content":"Thanks!","created_at":"2025-03-06T09:00:00Z","user":null}
		]}`)
	})

	comments, err := client.Comments(context.Background(), 555)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Alexandra Stone", comments[0].AuthorName)
	assert.Equal(t, time.Date(2025, time.March, 5, 18, 30, 0, 0, time.UTC), comments[0].CreatedAt)
	assert.Empty(t, comments[1].AuthorName)
}

func TestAddComment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create_comment", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "555", r.PostForm.Get("expense_id"))
		assert.Equal(t, "I paid cash", r.PostForm.Get("content"))
		fmt.Fprint(w, `{"comment":{"id":9,"content":"I paid cash","created_at":"2025-03-05T18:30:00Z","user":{"id":42,"first_name":"John","last_name":"Smith"}}}`)
	})

	comment, err := client.AddComment(context.Background(), 555, "I paid cash")
	require.NoError(t, err)
	assert.Equal(t, int64(9), comment.ID)
	assert.Equal(t, "John Smith", comment.AuthorName)
}

func TestUpdateExpenseOmitsEmptyFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update_expense/555", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "45.00", r.PostForm.Get("cost"))
		assert.False(t, r.PostForm.Has("date"), "zero date stays unset")
		assert.False(t, r.PostForm.Has("currency_code"))
		assert.False(t, r.PostForm.Has("users__0__user_id"))
		fmt.Fprint(w, `{"expenses":[{"id":555,"description":"Dinner","cost":"45.0","date":"2025-03-05T00:00:00Z"}],"errors":{}}`)
	})

	expense, err := client.UpdateExpense(context.Background(), 555, models.ExpenseDraft{
		Cost:        "45.00",
		Description: "Dinner",
	})
	require.NoError(t, err)
	assert.Equal(t, "45.0", expense.Cost)
}

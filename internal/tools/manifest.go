package tools

// Manifest is the chat tool catalog served at /.well-known/omi-tools.json.
// Omi fetches it when the app is created or updated in the app store and
// uses the descriptions to decide when to call each tool.
type Manifest struct {
	Tools []Tool `json:"tools"`
}

// Tool describes one chat tool endpoint.
type Tool struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Endpoint      string     `json:"endpoint"`
	Method        string     `json:"method"`
	Parameters    Parameters `json:"parameters"`
	AuthRequired  bool       `json:"auth_required"`
	StatusMessage string     `json:"status_message"`
}

// Parameters is a trimmed JSON-schema object: named properties plus the
// required list.
type Parameters struct {
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes one tool parameter.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Items       *Property `json:"items,omitempty"`
}

func defaultManifest() Manifest {
	return Manifest{Tools: []Tool{
		{
			Name:        "create_expense",
			Description: "Create a Splitwise expense and split it with friends. Use this when the user wants to split costs, share expenses, divide bills, or log shared purchases with people. The expense will be split equally among the user and the specified friends. By default creates a non-group expense unless a group is specified.",
			Endpoint:    "/tools/create_expense",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"amount": {
						Type:        "string",
						Description: "The total expense amount (e.g., '25', '25.50', '$30'). Required.",
					},
					"description": {
						Type:        "string",
						Description: "What the expense is for (e.g., 'lunch', 'groceries', 'dinner', 'uber'). Defaults to 'Expense' if not provided.",
					},
					"date": {
						Type:        "string",
						Description: "When the expense occurred. Supports: 'today', 'yesterday', or dates like '2026-01-20', 'Jan 15', 'January 15, 2026'. Defaults to today.",
					},
					"person": {
						Type:        "string",
						Description: "Name of a single person to split with (fuzzy matched to Splitwise friends). Use this OR 'people', not both.",
					},
					"people": {
						Type:        "array",
						Items:       &Property{Type: "string"},
						Description: "Names of multiple people to split with (each fuzzy matched to Splitwise friends). Use this when splitting with 2+ people.",
					},
					"group": {
						Type:        "string",
						Description: "Name of a Splitwise group to add this expense to (fuzzy matched). If not provided, creates a non-group expense.",
					},
					"currency_code": {
						Type:        "string",
						Description: "Currency code (e.g., 'USD', 'EUR', 'GBP'). Defaults to user's Splitwise default currency.",
					},
					"details": {
						Type:        "string",
						Description: "Additional notes or details about the expense.",
					},
				},
				Required: []string{"amount"},
			},
			AuthRequired:  true,
			StatusMessage: "Creating Splitwise expense...",
		},
		{
			Name:        "get_friends",
			Description: "Get the user's Splitwise friends list. Use this when the user wants to see their friends, check who they can split expenses with, or find someone's name on Splitwise.",
			Endpoint:    "/tools/get_friends",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{},
				Required:   []string{},
			},
			AuthRequired:  true,
			StatusMessage: "Getting your Splitwise friends...",
		},
		{
			Name:        "list_expenses",
			Description: "List recent Splitwise expenses. Use this when the user wants to see their expenses, check recent splits, view expense history, or find an expense ID.",
			Endpoint:    "/tools/list_expenses",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"limit": {
						Type:        "integer",
						Description: "Maximum number of expenses to return (default: 10, max: 50)",
					},
					"group": {
						Type:        "string",
						Description: "Filter by group name (fuzzy matched). If not provided, shows all expenses.",
					},
				},
				Required: []string{},
			},
			AuthRequired:  true,
			StatusMessage: "Getting your expenses...",
		},
		{
			Name:        "get_expense_details",
			Description: "Get details of a Splitwise expense including who is involved/participating, amounts paid and owed. Use this when the user wants to know who is in an expense, who paid, who owes what, or get full expense info.",
			Endpoint:    "/tools/get_expense_details",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"expense_id": {
						Type:        "string",
						Description: "The expense ID to get details for. Required. Use 'list expenses' to find IDs.",
					},
				},
				Required: []string{"expense_id"},
			},
			AuthRequired:  true,
			StatusMessage: "Getting expense details...",
		},
		{
			Name:        "update_expense",
			Description: "Update an existing Splitwise expense. Use this when the user wants to change, edit, or modify an expense's description, amount, or date.",
			Endpoint:    "/tools/update_expense",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"expense_id": {
						Type:        "string",
						Description: "The expense ID to update. Required. Use 'list expenses' to find IDs.",
					},
					"description": {
						Type:        "string",
						Description: "New description for the expense.",
					},
					"cost": {
						Type:        "string",
						Description: "New cost/amount for the expense (e.g., '25', '25.50').",
					},
					"date": {
						Type:        "string",
						Description: "New date for the expense.",
					},
				},
				Required: []string{"expense_id"},
			},
			AuthRequired:  true,
			StatusMessage: "Updating expense...",
		},
		{
			Name:        "delete_expense",
			Description: "Delete a Splitwise expense. Use this when the user wants to remove, delete, or cancel an expense.",
			Endpoint:    "/tools/delete_expense",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"expense_id": {
						Type:        "string",
						Description: "The expense ID to delete. Required. Use 'list expenses' to find IDs.",
					},
				},
				Required: []string{"expense_id"},
			},
			AuthRequired:  true,
			StatusMessage: "Deleting expense...",
		},
		{
			Name:        "get_expense_comments",
			Description: "Get comments on a Splitwise expense. Use this when the user wants to see comments, notes, or discussions on an expense.",
			Endpoint:    "/tools/get_expense_comments",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"expense_id": {
						Type:        "string",
						Description: "The expense ID to get comments for. Required. Use 'list expenses' to find IDs.",
					},
				},
				Required: []string{"expense_id"},
			},
			AuthRequired:  true,
			StatusMessage: "Getting expense comments...",
		},
		{
			Name:        "add_expense_comment",
			Description: "Add a comment to a Splitwise expense. Use this when the user wants to comment on, note, or add a message to an expense.",
			Endpoint:    "/tools/add_expense_comment",
			Method:      "POST",
			Parameters: Parameters{
				Properties: map[string]Property{
					"expense_id": {
						Type:        "string",
						Description: "The expense ID to comment on. Required. Use 'list expenses' to find IDs.",
					},
					"comment": {
						Type:        "string",
						Description: "The comment text to add. Required.",
					},
				},
				Required: []string{"expense_id", "comment"},
			},
			AuthRequired:  true,
			StatusMessage: "Adding comment...",
		},
	}}
}

// Package tools exposes the chat tool endpoints the Omi assistant calls.
// Every tool is a JSON POST that answers 200 with a result or an error
// message meant for the chat user; transport-level failures are the only
// non-200 responses.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"splitbridge/internal/middleware"
	"splitbridge/internal/service"
)

// Response is the chat tool reply envelope. Exactly one of Result or
// Error is set.
type Response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Handler serves the chat tool endpoints.
type Handler struct {
	svc *service.ExpenseService
	log *slog.Logger
}

// NewHandler creates a new Handler for the given service.
func NewHandler(svc *service.ExpenseService, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Register wires all tool endpoints, the manifest, and the health check
// onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/tools/create_expense", h.CreateExpense)
	mux.HandleFunc("/tools/get_friends", h.GetFriends)
	mux.HandleFunc("/tools/list_expenses", h.ListExpenses)
	mux.HandleFunc("/tools/get_expense_details", h.ExpenseDetails)
	mux.HandleFunc("/tools/update_expense", h.UpdateExpense)
	mux.HandleFunc("/tools/delete_expense", h.DeleteExpense)
	mux.HandleFunc("/tools/get_expense_comments", h.ExpenseComments)
	mux.HandleFunc("/tools/add_expense_comment", h.AddComment)
	mux.HandleFunc("/.well-known/omi-tools.json", h.Manifest)
	mux.HandleFunc("/health", h.Health)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UID == "" {
		h.respond(w, Response{Error: "User ID is required"})
		return
	}

	result, err := h.svc.CreateExpense(r.Context(), service.CreateExpenseRequest{
		Amount:       req.Amount,
		Description:  req.Description,
		Date:         req.Date,
		Person:       req.Person,
		People:       req.People,
		Group:        req.Group,
		CurrencyCode: req.CurrencyCode,
		Details:      req.Details,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to create expense")
		return
	}
	h.respond(w, Response{Result: result.Message})
}

func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	var req uidRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UID == "" {
		h.respond(w, Response{Error: "User ID is required"})
		return
	}

	msg, err := h.svc.ListFriends(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to get friends")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	var req listExpensesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UID == "" {
		h.respond(w, Response{Error: "User ID is required"})
		return
	}

	msg, err := h.svc.ListExpenses(r.Context(), service.ListExpensesRequest{
		Limit: req.Limit,
		Group: req.Group,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to list expenses")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) ExpenseDetails(w http.ResponseWriter, r *http.Request) {
	var req expenseIDRequest
	if !h.decode(w, r, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respond(w, Response{Error: msg})
		return
	}

	msg, err := h.svc.ExpenseDetails(r.Context(), int64(req.ExpenseID))
	if err != nil {
		h.respondError(w, r, err, "Failed to get expense details")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respond(w, Response{Error: msg})
		return
	}

	msg, err := h.svc.UpdateExpense(r.Context(), service.UpdateExpenseRequest{
		ExpenseID:   int64(req.ExpenseID),
		Description: req.Description,
		Cost:        req.Cost,
		Date:        req.Date,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to update expense")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseIDRequest
	if !h.decode(w, r, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respond(w, Response{Error: msg})
		return
	}

	msg, err := h.svc.DeleteExpense(r.Context(), int64(req.ExpenseID))
	if err != nil {
		h.respondError(w, r, err, "Failed to delete expense")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) ExpenseComments(w http.ResponseWriter, r *http.Request) {
	var req expenseIDRequest
	if !h.decode(w, r, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respond(w, Response{Error: msg})
		return
	}

	msg, err := h.svc.ExpenseComments(r.Context(), int64(req.ExpenseID))
	if err != nil {
		h.respondError(w, r, err, "Failed to get comments")
		return
	}
	h.respond(w, Response{Result: msg})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		h.respond(w, Response{Error: msg})
		return
	}

	msg, err := h.svc.AddComment(r.Context(), int64(req.ExpenseID), req.Comment)
	if err != nil {
		h.respondError(w, r, err, "Failed to add comment")
		return
	}
	h.respond(w, Response{Result: msg})
}

// Manifest serves the tool catalog Omi fetches at install time.
func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(defaultManifest()); err != nil {
		h.log.Error("failed to encode manifest", "error", err)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.log.Error("failed to encode health response", "error", err)
	}
}

// decode reads a tool request body. It handles the transport errors
// itself and reports whether the handler should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.Warn("failed to decode tool request", "path", r.URL.Path, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(Response{Error: "Invalid request body"}); err != nil {
			h.log.Error("failed to encode tool response", "error", err)
		}
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to encode tool response", "error", err)
	}
}

// respondError turns err into a chat-facing message: recognized errors
// pass through verbatim, anything else gets the generic prefix.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	id, _ := middleware.GetRequestID(r.Context())
	h.log.Error("Tool call failed",
		"path", r.URL.Path,
		"request_id", id,
		"error", err,
	)
	if msg, ok := service.UserFacing(err); ok {
		h.respond(w, Response{Error: msg})
		return
	}
	h.respond(w, Response{Error: fmt.Sprintf("%s: %s", prefix, err)})
}

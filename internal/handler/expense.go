package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/handler/dto"
	"github.com/fintrack/fintrack/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
// Every operation is scoped to the identity the auth middleware resolved.
type ExpenseHandler struct {
	svc    *service.ExpenseService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	expenses, err := h.svc.List(r.Context(), callerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, *dto.ToExpenseResponse(e))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	expense, err := h.svc.Get(r.Context(), id, callerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToExpenseResponse(expense))
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	expense, err := h.svc.Create(r.Context(), callerID, input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("expense_created",
		"expense_id", expense.ID,
		"user_id", callerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToExpenseResponse(expense))
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	expense, err := h.svc.Update(r.Context(), id, callerID, input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("expense_updated",
		"expense_id", expense.ID,
		"user_id", callerID,
	)

	writeJSON(w, http.StatusOK, dto.ToExpenseResponse(expense))
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, callerID); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("expense_deleted", "expense_id", id, "user_id", callerID)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeInput parses and validates the expense request body.
func (h *ExpenseHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.ExpenseInput, bool) {
	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return service.ExpenseInput{}, false
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
		return service.ExpenseInput{}, false
	}

	return service.ExpenseInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}, true
}

// handleError maps service errors to HTTP responses. Ownership
// mismatches arrive here already collapsed into not-found.
func (h *ExpenseHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "Expense not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		writeError(w, http.StatusBadRequest, "CATEGORY_NOT_FOUND", "Category does not exist")
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive decimal with at most two fraction digits")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// parseID extracts the numeric id path parameter.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

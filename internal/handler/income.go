package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/handler/dto"
	"github.com/fintrack/fintrack/internal/service"
)

// IncomeHandler handles HTTP requests for income operations.
type IncomeHandler struct {
	svc    *service.IncomeService
	logger *slog.Logger
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(svc *service.IncomeService, logger *slog.Logger) *IncomeHandler {
	return &IncomeHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/incomes.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	incomes, err := h.svc.List(r.Context(), callerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	responses := make([]dto.IncomeResponse, 0, len(incomes))
	for _, in := range incomes {
		responses = append(responses, *dto.ToIncomeResponse(in))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Get handles GET /api/incomes/{id}.
func (h *IncomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	income, err := h.svc.Get(r.Context(), id, callerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToIncomeResponse(income))
}

// Create handles POST /api/incomes.
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	income, err := h.svc.Create(r.Context(), callerID, input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("income_created",
		"income_id", income.ID,
		"user_id", callerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToIncomeResponse(income))
}

// Update handles PUT /api/incomes/{id}.
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	income, err := h.svc.Update(r.Context(), id, callerID, input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("income_updated",
		"income_id", income.ID,
		"user_id", callerID,
	)

	writeJSON(w, http.StatusOK, dto.ToIncomeResponse(income))
}

// Delete handles DELETE /api/incomes/{id}.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	callerID := auth.UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, callerID); err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("income_deleted", "income_id", id, "user_id", callerID)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeInput parses and validates the income request body.
func (h *IncomeHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.IncomeInput, bool) {
	var req dto.IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return service.IncomeInput{}, false
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
		return service.IncomeInput{}, false
	}

	return service.IncomeInput{
		Amount:      req.Amount,
		Source:      req.Source,
		Description: req.Description,
		Date:        date,
	}, true
}

// handleError maps service errors to HTTP responses.
func (h *IncomeHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIncomeNotFound):
		writeError(w, http.StatusNotFound, "INCOME_NOT_FOUND", "Income not found")
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive decimal with at most two fraction digits")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

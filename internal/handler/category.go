package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack/internal/handler/dto"
	"github.com/fintrack/fintrack/internal/service"
)

// CategoryHandler handles HTTP requests for the shared category list.
type CategoryHandler struct {
	svc    *service.CategoryService
	logger *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.ToCategoryResponse(c))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	id, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategoryName):
			writeError(w, http.StatusBadRequest, "INVALID_NAME", "Category name must be between 1 and 100 characters")
		case errors.Is(err, service.ErrCategoryExists):
			writeError(w, http.StatusConflict, "CATEGORY_EXISTS", "Category already exists")
		default:
			h.logger.Error("internal_error", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	h.logger.Info("category_created", "category_id", id)

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
